package infobip

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type destination struct {
	To        *string `json:"to" validate:"required"`
	MessageID *string `json:"messageId,omitempty"`
}

// recipients is a phone number or a list of them.
type recipients []string

func (r *recipients) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*r = recipients{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many
	return nil
}

type textMessage struct {
	From *string    `json:"from" validate:"required"`
	To   recipients `json:"to" validate:"required,dive,required"`
	Text *string    `json:"text" validate:"required"`
}

type advancedMessage struct {
	From         *string       `json:"from" validate:"required"`
	Destinations []destination `json:"destinations" validate:"required,min=1,dive"`
	Text         *string       `json:"text" validate:"required"`
}

type binaryContent struct {
	Hex        *string `json:"hex" validate:"required"`
	DataCoding *int    `json:"dataCoding" validate:"required"`
	EsmClass   *int    `json:"esmClass" validate:"required"`
}

type binaryMessage struct {
	From         *string        `json:"from" validate:"required"`
	Destinations []destination  `json:"destinations" validate:"required,min=1,dive"`
	Binary       *binaryContent `json:"binary" validate:"required"`
}

type voice struct {
	Name   *string `json:"name" validate:"required"`
	Gender *string `json:"gender" validate:"required"`
}

type voiceMessage struct {
	From         *string       `json:"from"`
	Destinations []destination `json:"destinations" validate:"required,min=1,dive"`
	Text         *string       `json:"text" validate:"required"`
	Language     *string       `json:"language"`
	Voice        *voice        `json:"voice"`
}

type textMessages struct {
	Messages []textMessage `json:"messages" validate:"required,min=1,dive"`
}

type advancedMessages struct {
	Messages []advancedMessage `json:"messages" validate:"required,min=1,dive"`
}

type binaryMessages struct {
	Messages []binaryMessage `json:"messages" validate:"required,min=1,dive"`
}

type voiceMessages struct {
	Messages []voiceMessage `json:"messages" validate:"required,min=1,dive"`
}

type singleVoice struct {
	Voice *voice `json:"voice" validate:"required"`
}

// checkShape decodes the fields of in into T and validates it.
func checkShape[T any](in Values, fields ...string) error {
	sub := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if v, has := in[f]; has {
			sub[f] = v
		}
	}
	buf, err := json.Marshal(sub)
	if err != nil {
		return &PayloadShapeError{Field: strings.Join(fields, ","), Reason: "not encodable", Err: err}
	}

	var payload T
	if err := json.Unmarshal(buf, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &PayloadShapeError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("want %s, got %s", typeErr.Type, typeErr.Value),
				Err:    err,
			}
		}
		return &PayloadShapeError{Field: strings.Join(fields, ","), Reason: err.Error(), Err: err}
	}

	if err := validate.Struct(&payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &PayloadShapeError{
				Field:  trimNamespace(fe.Namespace()),
				Reason: fmt.Sprintf("failed on %q", fe.Tag()),
				Err:    err,
			}
		}
		return &PayloadShapeError{Field: strings.Join(fields, ","), Reason: err.Error(), Err: err}
	}
	return nil
}

// trimNamespace turns "advancedMessages.messages[0].from" into
// "messages[0].from".
func trimNamespace(ns string) string {
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return ns
}
