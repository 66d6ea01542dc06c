package otasign_test

import (
	"testing"

	"github.com/otasign/otasign"
)

func TestValidateSignedApp(t *testing.T) {
	if err := otasign.ValidateSignedApp(&otasign.SignedApp{
		ID:               "f8b9f93c-8c09-4a3b-9d55-c7aee87a3b9b",
		BundleIdentifier: "com.example.test",
		Version:          "1.2.3",
	}); err != nil {
		t.Error(err)
	}

	if err := otasign.ValidateSignedApp(&otasign.SignedApp{
		ID:               "not-a-uuid",
		BundleIdentifier: "com.example.test",
		Version:          "1.2.3",
	}); err == nil {
		t.Error("expected error for invalid ID")
	}

	if err := otasign.ValidateSignedApp(&otasign.SignedApp{
		Version: "1.2.3",
	}); err == nil {
		t.Error("expected error for empty bundle identifier")
	}
}
