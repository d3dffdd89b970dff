package helpers

import "testing"

func TestGetNullString(t *testing.T) {
	if got := GetNullString(nil); got.Valid {
		t.Error("nil pointer should produce an invalid NullString")
	}

	s := "abc"
	got := GetNullString(&s)
	if !got.Valid || got.String != "abc" {
		t.Errorf("GetNullString(&%q) = %+v", s, got)
	}
}

func TestGetContentNullString(t *testing.T) {
	if got := GetContentNullString(""); got.Valid {
		t.Error("empty string should produce an invalid NullString")
	}

	got := GetContentNullString("application/pdf")
	if !got.Valid || got.String != "application/pdf" {
		t.Errorf("GetContentNullString = %+v", got)
	}
}

func TestStringPointerHelpers(t *testing.T) {
	if StringOrNil("") != nil {
		t.Error("StringOrNil(\"\") should be nil")
	}
	if p := StringOrNil("x"); p == nil || *p != "x" {
		t.Errorf("StringOrNil(\"x\") = %v", p)
	}

	if StringValue(nil) != "" {
		t.Error("StringValue(nil) should be empty")
	}
	s := "y"
	if StringValue(&s) != "y" {
		t.Errorf("StringValue(&%q) = %q", s, StringValue(&s))
	}
}
