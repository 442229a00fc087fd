package chatbot

import "strings"

// FormatContext formats documents into the context inserted into prompts.
// Each document gets a banner line naming its source file, followed by its
// raw text and a blank line. Order follows the slice.
func FormatContext(docs []*Document) string {
	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(Banner(doc.Name))
		sb.WriteString("\n")
		sb.WriteString(doc.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Banner returns the header line placed before a document's text.
func Banner(name string) string {
	return "--- " + name + "からの情報 ---"
}
