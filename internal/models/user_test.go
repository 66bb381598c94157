package models

import (
	"testing"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"admin role", RoleAdmin, true},
		{"editor role", RoleEditor, true},
		{"invalid role", "invalid", false},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidRole(tt.role)
			if result != tt.expected {
				t.Errorf("IsValidRole(%s) = %v, want %v", tt.role, result, tt.expected)
			}
		})
	}
}

func TestUser_HasPermission(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	editor := &User{Role: RoleEditor}
	nobody := &User{}

	tests := []struct {
		name     string
		user     *User
		action   string
		expected bool
	}{
		{"admin can manage users", admin, ActionManageUsers, true},
		{"admin can manage content", admin, ActionManageContent, true},
		{"editor can manage content", editor, ActionManageContent, true},
		{"editor can view inquiries", editor, ActionViewInquiries, true},
		{"editor cannot manage users", editor, ActionManageUsers, false},
		{"missing role has no permissions", nobody, ActionManageContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.user.HasPermission(tt.action)
			if result != tt.expected {
				t.Errorf("User with role %s HasPermission(%s) = %v, want %v",
					tt.user.Role, tt.action, result, tt.expected)
			}
		})
	}
}

func TestValidate_RegisterRequest(t *testing.T) {
	fields, err := Validate(RegisterRequest{Name: " ", Email: "nope", Password: "123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", fields)
	}

	fields, err = Validate(RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	if err != nil || fields != nil {
		t.Errorf("expected valid request, got %v %v", fields, err)
	}
}
