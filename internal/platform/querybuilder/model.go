package querybuilder

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// InsertModel starts an insert of one row taken from the db-tagged exported
// fields of model.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	cols, vals, err := modelFields(model)
	if err != nil {
		return nil, errors.Wrapf(err, "insert into %s", table)
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// ModelColumns lists the db-tagged columns of model in field order.
func ModelColumns(model any) ([]string, error) {
	cols, _, err := modelFields(model)
	return cols, err
}

func modelFields(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, errors.Newf("model is %s, not a struct", v.Kind())
	}

	t := v.Type()
	var cols []string
	var vals []any
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errors.Newf("%s has no db columns", t.Name())
	}
	return cols, vals, nil
}
