package patview

// ST96 namespace URIs used by JP patent publications.
const (
	NSJPPatent = "http://www.jpo.go.jp/standards/XMLSchema/ST96/JPPatent"
	NSPatent   = "http://www.wipo.int/standards/XMLSchema/ST96/Patent"
	NSCommon   = "http://www.wipo.int/standards/XMLSchema/ST96/Common"
	NSJPCommon = "http://www.jpo.go.jp/standards/XMLSchema/ST96/JPCommon"
)

// namespaces maps the short prefixes used in query paths to namespace URIs.
// It is never modified after initialization.
var namespaces = map[string]string{
	"jppat": NSJPPatent,
	"pat":   NSPatent,
	"com":   NSCommon,
	"jpcom": NSJPCommon,
}

// NamespaceURI returns the namespace URI registered for prefix.
// The second result is false for unknown prefixes.
func NamespaceURI(prefix string) (string, bool) {
	uri, ok := namespaces[prefix]
	return uri, ok
}

// Namespaces returns a copy of the prefix registry.
func Namespaces() map[string]string {
	m := make(map[string]string, len(namespaces))
	for k, v := range namespaces {
		m[k] = v
	}
	return m
}
