package entity

import "testing"

func TestProjectStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ProjectStatus
		to      ProjectStatus
		allowed bool
	}{
		{"new to execution", ProjectStatusNew, ProjectStatusExecution, true},
		{"new to canceled", ProjectStatusNew, ProjectStatusCanceled, true},
		{"new to completed", ProjectStatusNew, ProjectStatusCompleted, false},
		{"execution to paused", ProjectStatusExecution, ProjectStatusPaused, true},
		{"execution to completed", ProjectStatusExecution, ProjectStatusCompleted, true},
		{"paused to execution", ProjectStatusPaused, ProjectStatusExecution, true},
		{"paused to completed", ProjectStatusPaused, ProjectStatusCompleted, false},
		{"completed is terminal", ProjectStatusCompleted, ProjectStatusExecution, false},
		{"canceled is terminal", ProjectStatusCanceled, ProjectStatusNew, false},
		{"no self transition", ProjectStatusExecution, ProjectStatusExecution, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestFileStatusTransitions(t *testing.T) {
	if !FileStatusInProgress.CanTransitionTo(FileStatusProduction) {
		t.Error("in-progress file should be promotable to production")
	}
	if !FileStatusProduction.CanTransitionTo(FileStatusInProgress) {
		t.Error("production file should be demotable to in-progress")
	}
	if FileStatusObsolete.CanTransitionTo(FileStatusProduction) {
		t.Error("obsolete file must stay obsolete")
	}
	if FileStatusObsolete.CanTransitionTo(FileStatusInProgress) {
		t.Error("obsolete file must stay obsolete")
	}
}

func TestDocumentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    DocumentStatus
		to      DocumentStatus
		allowed bool
	}{
		{"draft to verified", DocumentStatusDraft, DocumentStatusVerified, true},
		{"draft to approved skips verification", DocumentStatusDraft, DocumentStatusApproved, false},
		{"verified to approved", DocumentStatusVerified, DocumentStatusApproved, true},
		{"verified to revision", DocumentStatusVerified, DocumentStatusRevision, true},
		{"approved to expired", DocumentStatusApproved, DocumentStatusExpired, true},
		{"approved back to draft", DocumentStatusApproved, DocumentStatusDraft, false},
		{"revision to draft", DocumentStatusRevision, DocumentStatusDraft, true},
		{"expired to revision", DocumentStatusExpired, DocumentStatusRevision, true},
		{"expired to approved", DocumentStatusExpired, DocumentStatusApproved, false},
		{"canceled is terminal", DocumentStatusCanceled, DocumentStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%v -> %v) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestStatusCodesAreStable(t *testing.T) {
	// Persisted integer codes are shared with the legacy database.
	if ProjectStatusNew != 0 || ProjectStatusExecution != 1 || ProjectStatusPaused != 2 ||
		ProjectStatusCompleted != 3 || ProjectStatusCanceled != 4 {
		t.Error("project status codes changed")
	}
	if FileStatusProduction != 0 || FileStatusInProgress != 1 || FileStatusObsolete != 2 {
		t.Error("file status codes changed")
	}
	if DocumentStatusDraft != 0 || DocumentStatusVerified != 1 || DocumentStatusApproved != 2 ||
		DocumentStatusRevision != 3 || DocumentStatusExpired != 4 || DocumentStatusCanceled != 5 {
		t.Error("document status codes changed")
	}
	if EventCreate != 0 || EventUpload != 5 || EventUpdate != 8 {
		t.Error("event codes changed")
	}
}

func TestStatusNames(t *testing.T) {
	if got := ProjectStatusExecution.String(); got != "Em Execução" {
		t.Errorf("ProjectStatusExecution.String() = %q", got)
	}
	if got := FileStatusProduction.String(); got != "Disp. Produção" {
		t.Errorf("FileStatusProduction.String() = %q", got)
	}
	if got := DocumentStatusRevision.String(); got != "Pendente Revisão" {
		t.Errorf("DocumentStatusRevision.String() = %q", got)
	}
	if got := EventApproval.String(); got != "Aprovar" {
		t.Errorf("EventApproval.String() = %q", got)
	}
}

func TestEventsForTransitions(t *testing.T) {
	if ProjectStatusPaused.Event() != EventPause {
		t.Error("pausing a project should record a pause event")
	}
	if ProjectStatusCompleted.Event() != EventComplete {
		t.Error("completing a project should record a complete event")
	}
	if DocumentStatusApproved.Event() != EventApproval {
		t.Error("approving a document should record an approval event")
	}
	if DocumentStatusExpired.Event() != EventUpdate {
		t.Error("expiring a document should record a plain update")
	}
}

func TestReasonRequired(t *testing.T) {
	required := []Event{EventPause, EventCancel, EventRevision}
	for _, e := range required {
		if !e.ReasonRequired() {
			t.Errorf("%v should require a reason", e)
		}
	}
	optional := []Event{EventCreate, EventStart, EventComplete, EventUpload, EventApproval, EventUpdate}
	for _, e := range optional {
		if e.ReasonRequired() {
			t.Errorf("%v should not require a reason", e)
		}
	}
}

func TestValid(t *testing.T) {
	if ProjectStatus(9).Valid() {
		t.Error("unknown project status should be invalid")
	}
	if DocumentStatus(-1).Valid() {
		t.Error("negative document status should be invalid")
	}
	if !Event(8).Valid() {
		t.Error("update event should be valid")
	}
	if Event(9).Valid() {
		t.Error("unknown event should be invalid")
	}
}
