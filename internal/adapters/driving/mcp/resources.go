package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for TriStep resources.
	uriScheme = "tristep://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus/status",
		Name:        "corpus-status",
		Description: "Cache and last-load state of the job and course datasets",
		MIMEType:    "application/json",
	}, s.handleStatusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "facets/{kind}",
		Name:        "facets",
		Description: "Filter values of the jobs or courses dataset",
		MIMEType:    "application/json",
	}, s.handleFacetsResource)
}

// statusInfo is the JSON shape of one corpus status.
type statusInfo struct {
	Kind     string `json:"kind"`
	Source   string `json:"source"`
	Cached   bool   `json:"cached"`
	Watched  bool   `json:"watched"`
	Hash     string `json:"hash,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	LoadedAt string `json:"loaded_at,omitempty"`
}

func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	statuses, err := s.ports.Corpus.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("corpus status: %w", err)
	}

	infos := make([]statusInfo, len(statuses))
	for i, st := range statuses {
		infos[i] = statusInfo{
			Kind:    st.Kind.String(),
			Source:  st.Source.Identity(),
			Cached:  st.Cached,
			Watched: st.Watched,
		}
		if st.Snapshot != nil {
			infos[i].Hash = st.Snapshot.Hash
			infos[i].Rows = st.Snapshot.Rows
			infos[i].LoadedAt = st.Snapshot.LoadedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleFacetsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, err := domain.ParseCorpusKind(extractKind(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	opts, err := s.ports.Corpus.Facets(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("facets: %w", err)
	}

	return jsonResult(req.Params.URI, opts)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractKind extracts the kind from tristep://facets/{kind}.
func extractKind(uri string) string {
	return strings.TrimPrefix(uri, uriScheme+"facets/")
}
