package handler

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	uuidPtrType = reflect.TypeOf(&uuid.UUID{})
)

type invalidUUIDParamError struct {
	param string
}

func (e *invalidUUIDParamError) Error() string {
	return fmt.Sprintf("Invalid %s: must be a UUID", e.param)
}

// bindQueryValues maps query values onto req and validates it.
// Form binding cannot decode uuid.UUID, so UUID fields are parsed here and
// removed from the values handed to gin.
func bindQueryValues(values url.Values, req any) error {
	rv := reflect.ValueOf(req)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to struct, got %T", req)
	}
	remaining := make(map[string][]string, len(values))
	for k, v := range values {
		remaining[k] = v
	}

	elem := rv.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if field.Type != uuidType && field.Type != uuidPtrType {
			continue
		}
		raw := strings.TrimSpace(values.Get(name))
		delete(remaining, name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return &invalidUUIDParamError{param: name}
		}
		if field.Type == uuidPtrType {
			elem.Field(i).Set(reflect.ValueOf(&id))
		} else {
			elem.Field(i).Set(reflect.ValueOf(id))
		}
	}

	if err := binding.MapFormWithTag(req, remaining, "form"); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(req)
}
