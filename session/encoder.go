package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const sessionFormatVersionV1 = 1

var flashEncodeOrder = [...]string{FlashError, FlashSuccess}

// Encode serializes a session to the compact binary layout stored in Redis.
// The SessionID is the Redis key and is not part of the blob.
func Encode(s *Session) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(sessionFormatVersionV1)
	buf.WriteByte(byte(s.Kind))

	if len(s.PrincipalRef) > 255 {
		return nil, errors.New("principal ref too long")
	}
	buf.WriteByte(byte(len(s.PrincipalRef)))
	buf.WriteString(s.PrincipalRef)

	buf.Write(s.CSRFSecret[:])

	if err := binary.Write(&buf, binary.BigEndian, s.CreatedAt); err != nil {
		return nil, err
	}

	for _, category := range flashEncodeOrder {
		msgs := s.Flash[category]
		if len(msgs) > 65535 {
			return nil, errors.New("flash queue too long")
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(msgs))); err != nil {
			return nil, err
		}
		for _, msg := range msgs {
			if len(msg) > 65535 {
				return nil, errors.New("flash message too long")
			}
			if err := binary.Write(&buf, binary.BigEndian, uint16(len(msg))); err != nil {
				return nil, err
			}
			buf.WriteString(msg)
		}
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by Encode.
func Decode(data []byte) (*Session, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionFormatVersionV1 {
		return nil, errors.New("invalid session version")
	}

	s := &Session{Flash: make(map[string][]string, len(flashEncodeOrder))}

	kind, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind > byte(BindingAdmin) {
		return nil, errors.New("invalid session binding")
	}
	s.Kind = Binding(kind)

	refLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	ref := make([]byte, refLen)
	if _, err := io.ReadFull(reader, ref); err != nil {
		return nil, err
	}
	s.PrincipalRef = string(ref)

	if _, err := io.ReadFull(reader, s.CSRFSecret[:]); err != nil {
		return nil, err
	}

	if err := binary.Read(reader, binary.BigEndian, &s.CreatedAt); err != nil {
		return nil, err
	}

	for _, category := range flashEncodeOrder {
		var count uint16
		if err := binary.Read(reader, binary.BigEndian, &count); err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		msgs := make([]string, 0, count)
		for i := uint16(0); i < count; i++ {
			var msgLen uint16
			if err := binary.Read(reader, binary.BigEndian, &msgLen); err != nil {
				return nil, err
			}
			msg := make([]byte, msgLen)
			if _, err := io.ReadFull(reader, msg); err != nil {
				return nil, err
			}
			msgs = append(msgs, string(msg))
		}
		s.Flash[category] = msgs
	}

	return s, nil
}
