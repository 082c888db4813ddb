package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pdfoutline/model"
)

// sizeCluster is a group of raw sizes within tolerance of its smallest
// member.
type sizeCluster struct {
	rep     float64 // most frequent member
	anchor  float64 // smallest member
	count   int     // spans in the cluster
	members map[float64]int
}

// BuildProfile computes the document font profile from every surviving span.
func BuildProfile(spans []model.Span, cfg Config) model.FontProfile {
	profile := model.FontProfile{
		LevelSizes: make(map[float64]model.Level),
		Tolerance:  cfg.SizeTolerance,
	}

	clusters := clusterSizes(spans, cfg.SizeTolerance)
	if len(clusters) == 0 {
		return profile
	}

	// Body size is the cluster with the most spans; ties go to the smaller.
	body := clusters[0]
	for _, c := range clusters[1:] {
		if c.count > body.count {
			body = c
		}
	}
	profile.BodySize = body.rep
	profile.Distinct = len(clusters)

	// Largest first from here on.
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].rep > clusters[j].rep })
	for _, c := range clusters {
		profile.Clusters = append(profile.Clusters, c.rep)
		if c.rep > body.rep {
			profile.CandidateSizes = append(profile.CandidateSizes, c.rep)
		}
	}

	profile.Structured = profile.Distinct >= 2 && profile.Distinct <= cfg.StructuredMaxSizes

	if profile.Structured {
		assignLevels(&profile, profile.Clusters)
	} else {
		assignLevels(&profile, headingSizes(profile, cfg, nil))
	}

	return profile
}

// BuildDocumentProfile is BuildProfile with the title removed from level
// assignment in standard documents: the three largest sizes that still
// carry non-title text become H1 to H3. Body size and clusters count every
// span. Structured documents keep the title size as H1.
func BuildDocumentProfile(spans []model.Span, title Title, cfg Config) model.FontProfile {
	profile := BuildProfile(spans, cfg)
	if profile.Structured || title.Text == "" {
		return profile
	}

	present := make(map[float64]bool)
	for _, s := range spans {
		if !title.Matches(s) {
			present[profile.Canonical(s.FontSize)] = true
		}
	}
	profile.LevelSizes = make(map[float64]model.Level)
	assignLevels(&profile, headingSizes(profile, cfg, present))
	return profile
}

// headingSizes returns the candidate sizes at or above the heading ratio,
// largest first. A non-nil present set restricts them further.
func headingSizes(profile model.FontProfile, cfg Config, present map[float64]bool) []float64 {
	floor := profile.BodySize * cfg.MinHeadingRatio
	var sizes []float64
	for _, s := range profile.CandidateSizes {
		if s < floor || (present != nil && !present[s]) {
			continue
		}
		sizes = append(sizes, s)
	}
	return sizes
}

// assignLevels maps the first three sizes onto H1, H2 and H3.
func assignLevels(profile *model.FontProfile, sizes []float64) {
	for i, s := range sizes {
		if i >= 3 {
			break
		}
		profile.LevelSizes[s] = model.LevelFromDepth(i + 1)
	}
}

// clusterSizes groups span sizes, smallest first. A size joins the current
// cluster when it is within tolerance of the cluster's smallest member, so
// a slow drift of sizes cannot chain into one cluster.
func clusterSizes(spans []model.Span, tol float64) []*sizeCluster {
	counts := make(map[float64]int)
	for _, s := range spans {
		if s.FontSize <= 0 {
			continue
		}
		counts[math.Round(s.FontSize*100)/100]++
	}
	if len(counts) == 0 {
		return nil
	}

	sizes := make([]float64, 0, len(counts))
	for s := range counts {
		sizes = append(sizes, s)
	}
	sort.Float64s(sizes)

	var clusters []*sizeCluster
	var cur *sizeCluster
	for _, s := range sizes {
		if cur == nil || !model.SizesEqual(s, cur.anchor, tol) {
			cur = &sizeCluster{anchor: s, members: make(map[float64]int)}
			clusters = append(clusters, cur)
		}
		cur.members[s] = counts[s]
		cur.count += counts[s]
	}

	for _, c := range clusters {
		best := -1
		for s, n := range c.members {
			if n > best || (n == best && s > c.rep) {
				c.rep, best = s, n
			}
		}
	}
	return clusters
}

// IsHeadingSized reports whether size is at least the heading ratio above
// body text.
func IsHeadingSized(size float64, profile model.FontProfile, cfg Config) bool {
	if profile.BodySize <= 0 {
		return false
	}
	c := profile.Canonical(size)
	return c > profile.BodySize && c >= profile.BodySize*cfg.MinHeadingRatio
}
