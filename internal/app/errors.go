package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrContactDisabled = errors.New("contact delivery not configured")
	ErrStart           = errors.New("service start failed")
)
