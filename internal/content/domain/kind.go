package domain

// Kind names a collection: the document collection, the blob path namespace
// and the label used in user-facing messages.
type Kind struct {
	Collection string
	Label      string
}

var (
	ProjectKind     = Kind{Collection: "projects", Label: "project"}
	CertificateKind = Kind{Collection: "certificates", Label: "certificate"}
)
