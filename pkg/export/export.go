package export

// Dataset is ordered tabular content ready for rendering.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Renderer turns a dataset into one output format.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	Extension() string
}

// ByFormat returns the renderer for a format name, false when unsupported.
func ByFormat(format string) (Renderer, bool) {
	switch format {
	case "csv":
		return &CSVRenderer{}, true
	case "pdf":
		return &PDFRenderer{}, true
	case "xlsx":
		return &XLSXRenderer{}, true
	default:
		return nil, false
	}
}
