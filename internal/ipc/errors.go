package ipc

import "errors"

var ErrChannel = errors.New("ipc channel failed")
