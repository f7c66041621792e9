package utils

import (
	"reflect"
	"testing"
)

func TestParseIntList(t *testing.T) {
	tests := []struct {
		in   string
		want []int64
	}{
		{"307,531", []int64{307, 531}},
		{" 39 , 140 ", []int64{39, 140}},
		{"307,,531", []int64{307, 531}},
		{"307,abc,531", []int64{307, 531}},
		{"", nil},
		{" , , ", nil},
		{"abc", nil},
	}
	for _, tt := range tests {
		if got := ParseIntList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIntList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
