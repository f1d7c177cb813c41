package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// ErrUnauthorizedSender indicates a payload-claimed sender that does not match
// the identity bound to the caller's session; rejected before persistence.
var ErrUnauthorizedSender = fmt.Errorf("chat use case sender does not match session identity")
