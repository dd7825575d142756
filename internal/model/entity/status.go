package entity

// Status and event codes are small integers persisted as-is. The numeric
// values are shared with the legacy database and must not change.

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus int16

const (
	ProjectStatusNew       ProjectStatus = 0
	ProjectStatusExecution ProjectStatus = 1
	ProjectStatusPaused    ProjectStatus = 2
	ProjectStatusCompleted ProjectStatus = 3
	ProjectStatusCanceled  ProjectStatus = 4
)

var projectStatusNames = map[ProjectStatus]string{
	ProjectStatusNew:       "Novo",
	ProjectStatusExecution: "Em Execução",
	ProjectStatusPaused:    "Pausado",
	ProjectStatusCompleted: "Concluído",
	ProjectStatusCanceled:  "Cancelado",
}

func (s ProjectStatus) String() string { return projectStatusNames[s] }

func (s ProjectStatus) Valid() bool {
	_, ok := projectStatusNames[s]
	return ok
}

// projectTransitions lists the allowed target states per current state.
// Completed and canceled projects are terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusNew:       {ProjectStatusExecution, ProjectStatusCanceled},
	ProjectStatusExecution: {ProjectStatusPaused, ProjectStatusCompleted, ProjectStatusCanceled},
	ProjectStatusPaused:    {ProjectStatusExecution, ProjectStatusCanceled},
}

// CanTransitionTo reports whether the move from s to target is allowed.
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, t := range projectTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Event returns the activity event recorded for a transition into s.
func (s ProjectStatus) Event() Event {
	switch s {
	case ProjectStatusNew:
		return EventCreate
	case ProjectStatusExecution:
		return EventStart
	case ProjectStatusPaused:
		return EventPause
	case ProjectStatusCompleted:
		return EventComplete
	case ProjectStatusCanceled:
		return EventCancel
	}
	return EventUpdate
}

// FileStatus is the lifecycle state of a ProjectFile.
type FileStatus int16

const (
	FileStatusProduction FileStatus = 0
	FileStatusInProgress FileStatus = 1
	FileStatusObsolete   FileStatus = 2
)

var fileStatusNames = map[FileStatus]string{
	FileStatusProduction: "Disp. Produção",
	FileStatusInProgress: "Em Processo",
	FileStatusObsolete:   "Obsoleto",
}

func (s FileStatus) String() string { return fileStatusNames[s] }

func (s FileStatus) Valid() bool {
	_, ok := fileStatusNames[s]
	return ok
}

// Obsolete files stay obsolete; a superseded drawing gets a new upload.
var fileTransitions = map[FileStatus][]FileStatus{
	FileStatusProduction: {FileStatusInProgress, FileStatusObsolete},
	FileStatusInProgress: {FileStatusProduction, FileStatusObsolete},
}

func (s FileStatus) CanTransitionTo(target FileStatus) bool {
	for _, t := range fileTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// DocumentStatus is the lifecycle state of a Document.
type DocumentStatus int16

const (
	DocumentStatusDraft    DocumentStatus = 0
	DocumentStatusVerified DocumentStatus = 1
	DocumentStatusApproved DocumentStatus = 2
	DocumentStatusRevision DocumentStatus = 3
	DocumentStatusExpired  DocumentStatus = 4
	DocumentStatusCanceled DocumentStatus = 5
)

var documentStatusNames = map[DocumentStatus]string{
	DocumentStatusDraft:    "Rascunho",
	DocumentStatusVerified: "Verificado",
	DocumentStatusApproved: "Aprovado",
	DocumentStatusRevision: "Pendente Revisão",
	DocumentStatusExpired:  "Expirado",
	DocumentStatusCanceled: "Cancelado",
}

func (s DocumentStatus) String() string { return documentStatusNames[s] }

func (s DocumentStatus) Valid() bool {
	_, ok := documentStatusNames[s]
	return ok
}

var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusDraft:    {DocumentStatusVerified, DocumentStatusCanceled},
	DocumentStatusVerified: {DocumentStatusApproved, DocumentStatusRevision, DocumentStatusCanceled},
	DocumentStatusApproved: {DocumentStatusRevision, DocumentStatusExpired, DocumentStatusCanceled},
	DocumentStatusRevision: {DocumentStatusDraft, DocumentStatusVerified, DocumentStatusCanceled},
	DocumentStatusExpired:  {DocumentStatusRevision, DocumentStatusCanceled},
}

func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	for _, t := range documentTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Event returns the activity event recorded for a transition into s.
func (s DocumentStatus) Event() Event {
	switch s {
	case DocumentStatusApproved:
		return EventApproval
	case DocumentStatusRevision:
		return EventRevision
	case DocumentStatusCanceled:
		return EventCancel
	}
	return EventUpdate
}

// Event is the kind of an activity record.
type Event int16

const (
	EventCreate   Event = 0
	EventStart    Event = 1
	EventPause    Event = 2
	EventComplete Event = 3
	EventCancel   Event = 4
	EventUpload   Event = 5
	EventApproval Event = 6
	EventRevision Event = 7
	EventUpdate   Event = 8
)

var eventNames = map[Event]string{
	EventCreate:   "Criar",
	EventStart:    "Iniciar",
	EventPause:    "Paralisar",
	EventComplete: "Concluir",
	EventCancel:   "Cancelar",
	EventUpload:   "Upload",
	EventApproval: "Aprovar",
	EventRevision: "Revisar",
	EventUpdate:   "Atualizar",
}

func (e Event) String() string { return eventNames[e] }

func (e Event) Valid() bool {
	_, ok := eventNames[e]
	return ok
}

// ReasonRequired reports whether an activity of this kind must carry a
// free-text justification.
func (e Event) ReasonRequired() bool {
	return e == EventPause || e == EventCancel || e == EventRevision
}
