package model

import (
	"context"
	"net/url"
)

// Uri 绝对 URI
// 构造时校验 OriginalString，格式不合法返回 *UriFormatError
type Uri struct {
	OriginalString string `json:"OriginalString"`

	parsed *url.URL
}

func (u *Uri) OnDeserialized(context.Context) error {
	if u.OriginalString == "" {
		return &UriFormatError{Input: u.OriginalString, Reason: "the URI is empty"}
	}

	parsed, err := url.Parse(u.OriginalString)
	if err != nil {
		return &UriFormatError{Input: u.OriginalString, Reason: err.Error()}
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return &UriFormatError{Input: u.OriginalString, Reason: "the format of the URI could not be determined"}
	}

	u.parsed = parsed
	return nil
}

func (u *Uri) Scheme() string {
	if u.parsed == nil {
		return ""
	}
	return u.parsed.Scheme
}

func (u *Uri) Host() string {
	if u.parsed == nil {
		return ""
	}
	return u.parsed.Host
}
