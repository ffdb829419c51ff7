package cpm

import "errors"

var (
	// ErrDescriptorNotFound indicates an expected descriptor file is absent.
	ErrDescriptorNotFound = errors.New("descriptor not found")

	// ErrDescriptorMalformed indicates a descriptor file is present but
	// cannot be parsed as its declared format.
	ErrDescriptorMalformed = errors.New("descriptor malformed")

	// ErrInvalidProject indicates the project has no parseable config.xml.
	ErrInvalidProject = errors.New("invalid project")

	// ErrProjectNotLoaded indicates a write was attempted without a project root.
	ErrProjectNotLoaded = errors.New("project not loaded")

	// ErrWriteFailed indicates config.xml could not be written back.
	ErrWriteFailed = errors.New("write failed")

	// ErrDescriptorChanged indicates config.xml no longer has the digest
	// that a conditional save expected.
	ErrDescriptorChanged = errors.New("descriptor changed")
)
