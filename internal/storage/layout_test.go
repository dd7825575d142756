package storage

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		want     FileClass
	}{
		{"peca.jpg", ClassImages},
		{"PECA.JPG", ClassImages},
		{"foto.jfif", ClassImages},
		{"manual.pdf", ClassDocuments},
		{"notas.txt", ClassDocuments},
		{"planilha.xlsx", ClassSpreadsheets},
		{"dados.csv", ClassSpreadsheets},
		{"desenho.dwg", ClassCAD},
		{"desenho.DXF", ClassCAD},
		{"modelo.step", ClassOther},
		{"sem-extensao", ClassOther},
	}

	for _, tt := range tests {
		if got := Classify(tt.filename); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("foto.png") {
		t.Error("png should be an image")
	}
	if IsImage("desenho.dwg") {
		t.Error("dwg should not be an image")
	}
}

func TestDocumentPath(t *testing.T) {
	got := DocumentPath("Qualidade", "Procedimentos", "PQ-001", "SOLDAGEM", "Engenharia", "pq001.pdf")
	want := "Documentos/Qualidade/Procedimentos/PQ-001 - SOLDAGEM/Engenharia/pq001.pdf"
	if got != want {
		t.Errorf("DocumentPath() = %q, want %q", got, want)
	}

	// Same inputs always derive the same path.
	if again := DocumentPath("Qualidade", "Procedimentos", "PQ-001", "SOLDAGEM", "Engenharia", "pq001.pdf"); again != got {
		t.Error("path derivation is not deterministic")
	}
}

func TestProjectFilePath(t *testing.T) {
	got := ProjectFilePath("000123", "SUPORTE MOTOR", "Engenharia", "DES-0042", "des0042.dwg")
	want := "Projetos/000123 - SUPORTE MOTOR/Engenharia/DES-0042/CADs/des0042.dwg"
	if got != want {
		t.Errorf("ProjectFilePath() = %q, want %q", got, want)
	}
}

func TestProjectFolderPaths(t *testing.T) {
	paths := ProjectFolderPaths("000123", "SUPORTE MOTOR", []string{"Engenharia", "Qualidade"})

	want := []string{
		"Projetos/000123 - SUPORTE MOTOR",
		"Projetos/000123 - SUPORTE MOTOR/Engenharia/Editáveis",
		"Projetos/000123 - SUPORTE MOTOR/Qualidade/Editáveis",
	}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(paths), len(want))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestProjectExtraFolderPath(t *testing.T) {
	got := ProjectExtraFolderPath("000123", "SUPORTE MOTOR", "Compras")
	want := "Projetos/000123 - SUPORTE MOTOR/Compras"
	if got != want {
		t.Errorf("ProjectExtraFolderPath() = %q, want %q", got, want)
	}
}
