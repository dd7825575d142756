package storage

import (
	"path"
	"strings"
)

// The directory layout below the media root is shared with existing
// deployments and must not change:
//
//	Documentos/<Category>/<Subcategory>/<Code> - <Name>/<Department>/<file>
//	Projetos/<Identifier> - <Name>/<Department>/<Draw>/<Class>/<file>
//
// Path derivation is pure; directory creation happens in the backends.

const (
	documentsRoot = "Documentos"
	projectsRoot  = "Projetos"
	editableDir   = "Editáveis"
)

// FileClass buckets a project file by its extension.
type FileClass string

const (
	ClassImages       FileClass = "Imagens"
	ClassDocuments    FileClass = "Documentos"
	ClassSpreadsheets FileClass = "Planilhas"
	ClassCAD          FileClass = "CADs"
	ClassOther        FileClass = "Outros"
)

var classExtensions = map[FileClass][]string{
	ClassImages:       {".jpg", ".png", ".jpeg", ".bmp", ".gif", ".jfif", ".tiff"},
	ClassDocuments:    {".doc", ".docx", ".pdf", ".odt", ".txt"},
	ClassSpreadsheets: {".xls", ".xlsx", ".ods", ".csv"},
	ClassCAD:          {".dwg", ".dxf"},
}

// Classify returns the storage class for a filename.
func Classify(filename string) FileClass {
	ext := strings.ToLower(path.Ext(filename))
	for class, exts := range classExtensions {
		for _, e := range exts {
			if ext == e {
				return class
			}
		}
	}
	return ClassOther
}

// IsImage reports whether the filename belongs to the image class.
func IsImage(filename string) bool {
	return Classify(filename) == ClassImages
}

// DocumentPath derives the storage path of a controlled document upload.
func DocumentPath(category, subcategory, code, name, department, filename string) string {
	folder := code + " - " + name
	return path.Join(documentsRoot, category, subcategory, folder, department, filename)
}

// ProjectFilePath derives the storage path of a project file upload.
func ProjectFilePath(identifier, projectName, department, draw, filename string) string {
	folder := identifier + " - " + projectName
	return path.Join(projectsRoot, folder, department, draw, string(Classify(filename)), filename)
}

// ProjectFolderPaths lists the directories allocated for a new project:
// one <folder>/Editáveis tree per active template folder.
func ProjectFolderPaths(identifier, projectName string, folders []string) []string {
	base := path.Join(projectsRoot, identifier+" - "+projectName)
	paths := make([]string, 0, len(folders)+1)
	paths = append(paths, base)
	for _, f := range folders {
		paths = append(paths, path.Join(base, f, editableDir))
	}
	return paths
}

// ProjectExtraFolderPath derives the path of a manually created folder
// inside an existing project tree.
func ProjectExtraFolderPath(identifier, projectName, folder string) string {
	return path.Join(projectsRoot, identifier+" - "+projectName, folder)
}
