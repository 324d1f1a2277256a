package mailer

import "fmt"

// PasswordResetBody renders the HTML of the recovery mail around the
// single-use link.
func PasswordResetBody(link string) string {
	return fmt.Sprintf(`
        <h3>Password reset link</h3>
        <hr>
        <p> You requested a password reset, and here is your <a href="%s">link</a>.  </p>
        <p> Please note that this url can be used once and has 1 hour to expire.</p>
        <p> <b>Please do not share this link with anyone</b>, including AwesomeShop representatives.</p>
        <p> Thanks for securing your account.</p>
      `, link)
}
