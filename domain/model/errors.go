package model

import "errors"

var (
	ErrAllIPServicesFailed = errors.New("all ip services failed")
	ErrTokenInvalid        = errors.New("api token invalid")
	ErrZoneNotFound        = errors.New("zone not found")
	ErrRecordNotFound      = errors.New("record not found")
	ErrRecordRefInvalid    = errors.New("record reference invalid")
	ErrNetworkUnavailable  = errors.New("network unavailable")
	ErrRunNotFound         = errors.New("run not found")
)
