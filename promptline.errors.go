package promptline

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-promptline/internal"
)

// Error message constants
const (
	ErrMsgFormatParse   = "prompt format parsing failed"
	ErrMsgConfigLoad    = "configuration could not be loaded"
	ErrMsgUnknownModule = "no module with this name exists"
)

// Error code constants for categorization
const (
	ErrCodeFormat = "PROMPTLINE_FORMAT"
	ErrCodeConfig = "PROMPTLINE_CONFIG"
	ErrCodeModule = "PROMPTLINE_MODULE"
)

// Metadata keys attached to errors
const (
	MetaKeyFormat = "format"
	MetaKeyPath   = "path"
	MetaKeyModule = "module"
	MetaKeyLine   = "line"
	MetaKeyColumn = "column"
)

// NewFormatParseError wraps a parse failure of a prompt format string,
// attaching the source position when the cause carries one.
func NewFormatParseError(format string, cause error) error {
	err := cuserr.WrapStdError(cause, ErrCodeFormat, ErrMsgFormatParse).
		WithMetadata(MetaKeyFormat, format)
	var parseErr *internal.ParseError
	if errors.As(cause, &parseErr) {
		err = err.
			WithMetadata(MetaKeyLine, strconv.Itoa(parseErr.Position.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(parseErr.Position.Column))
	}
	return err
}

// NewConfigLoadError wraps a configuration file read or parse failure
func NewConfigLoadError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgConfigLoad).
		WithMetadata(MetaKeyPath, path)
}

// NewUnknownModuleError reports a module name that is neither a builtin
// nor a custom.<name> reference.
func NewUnknownModuleError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyModule, ErrMsgUnknownModule).
		WithMetadata(MetaKeyModule, name)
}

// CheckFormat validates a format string without rendering it. Useful for
// configuration linting.
func CheckFormat(format string) error {
	if _, err := internal.ParseFormat(format, nil); err != nil {
		return NewFormatParseError(format, err)
	}
	return nil
}
