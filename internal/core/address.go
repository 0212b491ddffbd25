package core

import (
	"mime"
	"regexp"
	"strings"
)

// Address is a parsed mail address with an optional display name.
type Address struct {
	Name  string
	Email string
}

// addrRe picks the bare address out of the last whitespace-separated token,
// shedding surrounding punctuation such as '<', '>' and trailing commas.
var addrRe = regexp.MustCompile(`[^<\s]\S*@\S+[a-zA-Z]`)

// nameTrimSet is ASCII punctuation plus whitespace, stripped from both ends
// of the display-name part.
const nameTrimSet = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~ \t\n\r\v\f"

// SplitAddress splits a display name and a mail address out of free-form
// operator or dataset input. Accepted shapes include:
//
//	foo@bar.com                 -> ("", "foo@bar.com")
//	Foo Bar foo@bar.com         -> ("Foo Bar", "foo@bar.com")
//	  "Foo Bar" <foo@bar.com>,  -> ("Foo Bar", "foo@bar.com")
//
// Input with no recognizable address is a ConfigError.
func SplitAddress(text string) (Address, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Address{}, Configf("invalid email address: %q", text)
	}

	fields := strings.Fields(trimmed)
	last := fields[len(fields)-1]

	email := addrRe.FindString(last)
	if email == "" {
		return Address{}, Configf("invalid email address: %q", text)
	}

	name := ""
	if len(fields) > 1 {
		name = strings.Trim(strings.Join(fields[:len(fields)-1], " "), nameTrimSet)
	}
	return Address{Name: name, Email: email}, nil
}

// SplitAddressList parses each element of a list of address strings.
func SplitAddressList(texts []string) ([]Address, error) {
	addrs := make([]Address, 0, len(texts))
	for _, t := range texts {
		a, err := SplitAddress(t)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// String renders the address for a mail header, Q-encoding a non-ASCII
// display name per RFC 2047.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return mime.QEncoding.Encode("utf-8", a.Name) + " <" + a.Email + ">"
}

// FormatAddressHeader joins addresses into a single header value.
func FormatAddressHeader(addrs []Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// EncodeHeaderWord Q-encodes a header value when it contains non-ASCII text.
func EncodeHeaderWord(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}
