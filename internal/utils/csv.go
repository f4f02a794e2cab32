package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// StructToCsvHeader takes a struct type and returns a slice of strings representing the CSV header.
// It uses the `csv` tag on struct fields to determine the header name.
// If a field doesn't have a `csv` tag, the field name is used.
func StructToCsvHeader(t reflect.Type) []string {
	headers := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		headers = append(headers, csvName(t.Field(i)))
	}
	return headers
}

// WriteToCsvFile writes the given headers and data to a CSV file at the specified filePath.
func WriteToCsvFile[T any](filePath string, headers []string, data []T) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", filePath, err)
	}
	defer file.Close()

	if err := WriteCsv(file, headers, data); err != nil {
		return err
	}
	return file.Close()
}

// WriteCsv writes headers and one row per struct in data.
// Slice fields are joined with a semicolon. Nil pointers are skipped.
func WriteCsv[T any](w io.Writer, headers []string, data []T) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range data {
		v := reflect.ValueOf(item)
		if v.Kind() == reflect.Ptr {
			if v.IsNil() {
				continue
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return fmt.Errorf("data must be a slice of structs, got %s", v.Kind())
		}

		row := make([]string, len(headers))
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			idx := indexOf(headers, csvName(t.Field(i)))
			if idx < 0 {
				continue
			}
			row[idx] = csvValue(v.Field(i))
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvName(field reflect.StructField) string {
	if tag := field.Tag.Get("csv"); tag != "" {
		return tag
	}
	return field.Name
}

func csvValue(v reflect.Value) string {
	if v.Kind() != reflect.Slice {
		return fmt.Sprintf("%v", v.Interface())
	}
	parts := make([]string, 0, v.Len())
	for j := 0; j < v.Len(); j++ {
		parts = append(parts, fmt.Sprintf("%v", v.Index(j).Interface()))
	}
	return strings.Join(parts, ";")
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
