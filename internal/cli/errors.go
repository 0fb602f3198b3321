package cli

import "errors"

var (
	ErrorUserCancelled = errors.New("user_cancelled")
)
