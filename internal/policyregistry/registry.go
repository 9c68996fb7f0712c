// Package policyregistry resolves the RAG thresholds a calculation runs
// against. Sources, lowest precedence first: the built-in default policy, a
// local YAML policy file, a remote policy registry, and finally whatever the
// request snapshot itself carries.
package policyregistry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"budget-engine/internal/model"
	"budget-engine/internal/rag"
)

const maxConcurrentFetches = 4

type Registry struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger

	// remote thresholds by family
	cache sync.Map

	mu   sync.RWMutex
	file rag.Policy
}

// New returns a registry. An empty baseURL disables remote lookups.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Registry {
	r := &Registry{baseURL: baseURL, logger: logger}
	if baseURL != "" {
		r.client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r
}

type policyFile struct {
	Thresholds map[string]model.RagThresholds `yaml:"thresholds"`
}

// LoadFile replaces the file layer with the thresholds in path.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}

	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("failed to parse policy file: %w", err)
	}
	for family, t := range pf.Thresholds {
		if t.Polarity != "" && t.Polarity != model.Ascending && t.Polarity != model.Descending {
			return fmt.Errorf("policy file: family %s has unknown polarity %q", family, t.Polarity)
		}
	}

	r.mu.Lock()
	r.file = rag.Policy(nil).Merge(pf.Thresholds)
	r.mu.Unlock()

	r.logger.Info("policy file loaded", zap.String("path", path), zap.Int("families", len(pf.Thresholds)))
	return nil
}

// Policy returns the effective policy for the given families.
func (r *Registry) Policy(ctx context.Context, families []string) rag.Policy {
	r.mu.RLock()
	policy := rag.DefaultPolicy().Merge(r.file)
	r.mu.RUnlock()

	if r.baseURL == "" {
		return policy
	}
	return policy.Merge(r.fetchAll(ctx, families))
}

// Resolve returns s with thresholds filled in for every known family the
// snapshot does not set itself.
func (r *Registry) Resolve(ctx context.Context, s model.Snapshot) model.Snapshot {
	var missing []string
	for _, family := range rag.Families() {
		if _, ok := s.Thresholds[family]; !ok {
			missing = append(missing, family)
		}
	}
	if len(missing) == 0 {
		return s
	}

	policy := r.Policy(ctx, missing)
	out := s.Clone()
	if out.Thresholds == nil {
		out.Thresholds = make(map[string]model.RagThresholds, len(missing))
	}
	for _, family := range missing {
		out.Thresholds[family] = policy.Lookup(family)
	}
	return out
}

// fetchAll returns cached or freshly fetched thresholds. Families the remote
// does not answer for are left out, so lower layers stay in effect. An empty
// polarity is kept and inherited from the lower layers on merge.
func (r *Registry) fetchAll(ctx context.Context, families []string) map[string]model.RagThresholds {
	result := make(map[string]model.RagThresholds, len(families))

	var toFetch []string
	for _, family := range families {
		if t, ok := r.cache.Load(family); ok {
			result[family] = t.(model.RagThresholds)
		} else {
			toFetch = append(toFetch, family)
		}
	}
	if len(toFetch) == 0 {
		return result
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, family := range toFetch {
		family := family
		g.Go(func() error {
			t, err := r.fetch(gctx, family)
			if err != nil {
				r.logger.Warn("policy registry lookup failed, using local policy",
					zap.String("family", family), zap.Error(err))
				return nil
			}
			r.cache.Store(family, t)
			mu.Lock()
			result[family] = t
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return result
}

type thresholdsResponse struct {
	Family   string         `json:"family"`
	Red      float64        `json:"red"`
	Amber    float64        `json:"amber"`
	Polarity model.Polarity `json:"polarity"`
}

func (r *Registry) fetch(ctx context.Context, family string) (model.RagThresholds, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/thresholds/"+family, nil)
	if err != nil {
		return model.RagThresholds{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return model.RagThresholds{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return model.RagThresholds{}, fmt.Errorf("registry returned %d", resp.StatusCode)
	}

	var tr thresholdsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return model.RagThresholds{}, fmt.Errorf("decode thresholds: %w", err)
	}
	return model.RagThresholds{Red: tr.Red, Amber: tr.Amber, Polarity: tr.Polarity}, nil
}

// Close releases idle registry connections.
func (r *Registry) Close() {
	if r.client != nil {
		r.client.CloseIdleConnections()
	}
}
