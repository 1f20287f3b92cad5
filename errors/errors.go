package errors

import "fmt"

var (
	ErrDuplicateSelector    = fmt.Errorf("selector claimed by more than one persona")
	ErrEmptySelector        = fmt.Errorf("selector must not be empty")
	ErrInvalidPersona       = fmt.Errorf("invalid persona definition")
	ErrHandleCreationFailed = fmt.Errorf("delivery handle creation failed")
	ErrHandleGone           = fmt.Errorf("delivery handle no longer exists")
	ErrChannelUnresolved    = fmt.Errorf("channel cannot be resolved")
	ErrConverterDisabled    = fmt.Errorf("sticker converter is not configured")
	ErrUnsupportedSticker   = fmt.Errorf("unsupported sticker format")
	ErrFetchFailed          = fmt.Errorf("content fetch failed")
	ErrContentTooLarge      = fmt.Errorf("content exceeds the size limit")
	ErrStoreUnavailable     = fmt.Errorf("store is not configured")
	ErrUnknownStoreDriver   = fmt.Errorf("unknown store driver")
	ErrWorkerPanic          = fmt.Errorf("worker panic")
)
