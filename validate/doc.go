// Package validate is the input-shape pre-check for the auth forms. Each raw
// form submission is checked before any store access; the outcome is an
// ordered list of field errors, empty meaning proceed. Rules and user-facing
// messages match the storefront's form contracts exactly.
package validate
