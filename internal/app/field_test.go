package app

import (
	"encoding/json"
	"testing"
)

func TestFieldStates(t *testing.T) {
	var body struct {
		CategoryID Field[string] `json:"categoryId"`
	}

	if err := json.Unmarshal([]byte(`{}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.CategoryID.Defined {
		t.Error("absent field should not be defined")
	}

	body.CategoryID = Field[string]{}
	if err := json.Unmarshal([]byte(`{"categoryId":null}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.CategoryID.Defined || !body.CategoryID.Null {
		t.Errorf("null field should be defined and null: %+v", body.CategoryID)
	}
	if body.CategoryID.Set() {
		t.Error("null field is not set")
	}

	body.CategoryID = Field[string]{}
	if err := json.Unmarshal([]byte(`{"categoryId":"cat_1"}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.CategoryID.Set() || body.CategoryID.Value != "cat_1" {
		t.Errorf("present field should carry the value: %+v", body.CategoryID)
	}
}
