package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/crimson-sun/stackgrep/internal/model"
)

func TestDeriveLogGroups_OneNamePerResourceInOrder(t *testing.T) {
	resources := []model.Resource{
		{ResourceType: "AWS::Lambda::Function", PhysicalID: "app-Handler-AB12"},
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/app/access"},
		{ResourceType: "AWS::Lambda::Function", PhysicalID: "app-Worker-CD34"},
	}

	groups, err := DeriveLogGroups(resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"/aws/lambda/app-Handler-AB12",
		"/app/access",
		"/aws/lambda/app-Worker-CD34",
	}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d: %v", len(want), len(groups), groups)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("group %d: expected %q, got %q", i, want[i], groups[i])
		}
	}
}

func TestDeriveLogGroups_NoDuplicatesIntroduced(t *testing.T) {
	resources := []model.Resource{
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/a"},
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/b"},
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/c"},
	}

	groups, err := DeriveLogGroups(resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for _, g := range groups {
		if seen[g] {
			t.Fatalf("duplicate group introduced: %q", g)
		}
		seen[g] = true
	}
}

func TestDeriveLogGroups_UnknownTypeIsValidationError(t *testing.T) {
	resources := []model.Resource{
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/a"},
		{ResourceType: "AWS::S3::Bucket", PhysicalID: "my-bucket"},
	}

	_, err := DeriveLogGroups(resources)
	if err == nil {
		t.Fatal("expected validation error for type outside the allow-list")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if vErr.ResourceType != "AWS::S3::Bucket" {
		t.Fatalf("expected offending type in error, got %q", vErr.ResourceType)
	}
	msg := err.Error()
	if !strings.Contains(msg, "AWS::S3::Bucket") {
		t.Errorf("error should name the offending type: %v", msg)
	}
	for _, accepted := range []string{"AWS::Lambda::Function", "AWS::Logs::LogGroup"} {
		if !strings.Contains(msg, accepted) {
			t.Errorf("error should list accepted type %q: %v", accepted, msg)
		}
	}
}

func TestFilterLoggable(t *testing.T) {
	resources := []model.Resource{
		{ResourceType: "AWS::S3::Bucket", PhysicalID: "bucket"},
		{ResourceType: "AWS::Lambda::Function", PhysicalID: "fn"},
		{ResourceType: "AWS::IAM::Role", PhysicalID: "role"},
		{ResourceType: "AWS::Logs::LogGroup", PhysicalID: "/g"},
	}

	loggable := FilterLoggable(resources)
	if len(loggable) != 2 {
		t.Fatalf("expected 2 loggable resources, got %d", len(loggable))
	}
	if loggable[0].PhysicalID != "fn" || loggable[1].PhysicalID != "/g" {
		t.Fatalf("unexpected order or contents: %v", loggable)
	}
}

func TestFilterLoggable_Empty(t *testing.T) {
	if got := FilterLoggable(nil); len(got) != 0 {
		t.Fatalf("expected no loggable resources, got %v", got)
	}
}

func TestLoggableResourceTypes_Sorted(t *testing.T) {
	types := LoggableResourceTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 types, got %v", types)
	}
	if types[0] != "AWS::Lambda::Function" || types[1] != "AWS::Logs::LogGroup" {
		t.Fatalf("expected sorted allow-list, got %v", types)
	}
}
