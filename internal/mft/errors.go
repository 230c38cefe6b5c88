package mft

import "github.com/pkg/errors"

var (
	errAttributeTooShort        = errors.New("attribute shorter than its fixed header")
	errAttributeLengthOutOfRange = errors.New("attribute length out of range")
	errAttributeValueOutOfRange  = errors.New("resident attribute value out of range")
	errInvalidSignature          = errors.New("invalid record signature")
	errDataRunOutOfRange          = errors.New("data run exceeds declared bound")
)
