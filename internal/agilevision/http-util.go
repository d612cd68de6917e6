package agilevision

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"
)

// StructToJSONMap преобразует структуру запроса в карту по json-тегам.
// Поля с omitempty и нулевым значением пропускаются, что позволяет
// отличить переданные клиентом поля от незаполненных.
func StructToJSONMap(obj interface{}) map[string]interface{} {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	res := make(map[string]interface{})
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldValue := val.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		tagParts := strings.Split(tag, ",")
		tagName := tagParts[0]
		if tagName == "" {
			tagName = field.Name
		}
		tagOptions := tagParts[1:]

		omitEmpty := false
		for _, option := range tagOptions {
			if option == "omitempty" {
				omitEmpty = true
				break
			}
		}
		if omitEmpty && fieldValue.Kind() != reflect.Bool && isNilOrZero(fieldValue) {
			continue
		}

		if fieldValue.CanInterface() {
			res[tagName] = fieldValue.Interface()
		}
	}
	return res
}

func isNilOrZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr:
		// Указатель на нулевое значение означает отсутствующее поле:
		// клиентская пустая строка даты разбирается в нулевую Date
		return v.IsNil() || v.Elem().IsZero()
	case reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return v.IsZero()
}

// BindData привязывает тело запроса к target и возвращает список json-полей,
// которые клиент действительно передал. Используется для частичных обновлений.
func BindData(c echo.Context, target interface{}) ([]string, error) {
	if err := c.Bind(target); err != nil {
		return nil, fmt.Errorf("failed to bind data from JSON body: %w", err)
	}

	var fields []string
	rawMap := StructToJSONMap(target)
	for keyRaw := range rawMap {
		fields = append(fields, keyRaw)
	}
	return fields, nil
}
