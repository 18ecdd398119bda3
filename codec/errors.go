package codec

import (
	"errors"
	"fmt"
)

// FormatError reports a field whose wire string could not be parsed into its
// structured type, such as a malformed date-time.
type FormatError struct {
	Model string
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("codec: %s: malformed value %q: %v", qualify(e.Model, e.Field), e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValidationError reports the first field whose value does not match its
// declared type. Expected names the declared type or constraint; Got, when
// known, describes what was found instead.
type ValidationError struct {
	Model    string
	Field    string
	Expected string
	Got      string
}

func (e *ValidationError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("codec: %s: expected %s", qualify(e.Model, e.Field), e.Expected)
	}
	return fmt.Sprintf("codec: %s: expected %s, got %s", qualify(e.Model, e.Field), e.Expected, e.Got)
}

func qualify(model, field string) string {
	switch {
	case model == "":
		return field
	case field == "":
		return model
	default:
		return model + "." + field
	}
}

// nest re-homes a codec error raised inside a nested value onto the
// enclosing model, so the reported path starts at the outermost model.
func nest(err error, model, prefix string) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Model = model
		fe.Field = joinPath(prefix, fe.Field)
		return err
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Model = model
		ve.Field = joinPath(prefix, ve.Field)
	}
	return err
}

func joinPath(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	case field[0] == '[':
		return prefix + field
	default:
		return prefix + "." + field
	}
}
