package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

// Fixed Portuguese notification texts. The wording matches what users of
// the existing deployment are used to receiving.

const (
	SubjectApprovalPending = "Gestor de Documentos - Documento %s Agd. Aprovação"
	SubjectApproved        = "Gestor de Documentos - Documento %s Aprovado"
	SubjectRevision        = "Gestor de Documentos - Documento %s Enviado Para Revisão"
	SubjectExpiring        = "Gestor de Documentos - Documentos Próximos de Expiração"
	SubjectWaiting         = "Gestor de Documentos - Documentos Aguardando Aprovação"

	signature = "\nTenha um ótimo dia!\nSistema de Gestão de Documentos - Panflight"
)

// ApprovalPendingData fills the approval-request notice sent to approvers.
type ApprovalPendingData struct {
	Code        string
	Name        string
	Subcategory string
	Uploader    string
	DetailURL   string
}

// StatusChangeData fills the approved / sent-to-revision notices.
type StatusChangeData struct {
	Code      string
	Name      string
	Actor     string
	Reason    string
	DetailURL string
}

// BatchItem is one document line in a per-user digest.
type BatchItem struct {
	Code      string
	Name      string
	Days      int
	DetailURL string
}

// BatchData fills the expiring / waiting digests, one email per user.
type BatchData struct {
	FirstName string
	Items     []BatchItem
}

var approvalPendingTmpl = template.Must(template.New("approval_pending").Parse(
	"O Documento {{.Name}} ({{.Subcategory}}) feito pelo usuário {{.Uploader}} está " +
		"aguardando sua aprovação.\nPara visualizar, acesse o link abaixo:\n{{.DetailURL}}"))

var approvedTmpl = template.Must(template.New("approved").Parse(
	"O documento {{.Code}} - {{.Name}} foi aprovado por {{.Actor}}."))

var revisionTmpl = template.Must(template.New("revision").Parse(
	"O documento {{.Code}} - {{.Name}} foi enviado para revisão pelo usuário {{.Actor}}.\n" +
		"Motivo: {{.Reason}}\nVerifique o link abaixo para mais detalhes:\n{{.DetailURL}}"))

var expiringTmpl = template.Must(template.New("expiring").Parse(
	"Olá {{.FirstName}}!\nVim informar que os documento(s) abaixo irá(ão) expirar em breve:\n\n" +
		"{{range .Items}}{{.Code}} | {{.Name}} ({{.Days}} dia(s)) - {{.DetailURL}}\n{{end}}" +
		signature))

var waitingTmpl = template.Must(template.New("waiting").Parse(
	"Olá {{.FirstName}}!\nVim informar que o(s) documento(s) abaixo está(ão) aguardando sua aprovação:\n\n" +
		"{{range .Items}}{{.Code}} | {{.Name}} ({{.Days}} dia(s)) - {{.DetailURL}}\n{{end}}" +
		signature))

// RenderApprovalPending builds the approval-request message body.
func RenderApprovalPending(data ApprovalPendingData) (string, error) {
	return render(approvalPendingTmpl, data)
}

// RenderApproved builds the document-approved message body.
func RenderApproved(data StatusChangeData) (string, error) {
	return render(approvedTmpl, data)
}

// RenderRevision builds the sent-to-revision message body.
func RenderRevision(data StatusChangeData) (string, error) {
	return render(revisionTmpl, data)
}

// RenderExpiringBatch builds the per-user expiring-soon digest.
func RenderExpiringBatch(data BatchData) (string, error) {
	return render(expiringTmpl, data)
}

// RenderWaitingBatch builds the per-user waiting-approval digest.
func RenderWaitingBatch(data BatchData) (string, error) {
	return render(waitingTmpl, data)
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
