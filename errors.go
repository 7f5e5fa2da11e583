package bpe

import "errors"

var (
	ErrInvalidTargetSize = errors.New("invalid target vocabulary size")
	ErrInvalidOptions    = errors.New("invalid training options")
	ErrEmptyCorpus       = errors.New("empty corpus")
	ErrCorruptModel      = errors.New("corrupt model")
	ErrChecksum          = errors.New("model checksum mismatch")
	ErrUnknownID         = errors.New("unknown token id")
)
