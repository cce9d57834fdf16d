package models

// Asset is one image file observed in a product folder
type Asset struct {
	Name string `json:"name"` // Bare file name, used for selection
	Path string `json:"path"` // Slash path relative to the repository root, used for the URL
}

// Entry is a picked image together with its public URL
type Entry struct {
	Asset
	Role string `json:"role"` // "cover", "detail" or "fill"
	URL  string `json:"url"`
}

// FolderSelection is the export result for a single product folder
type FolderSelection struct {
	Folder  string  `json:"folder"`
	Entries []Entry `json:"entries"`
}
