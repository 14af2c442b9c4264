package domain

// RepositoryMetadata is an immutable value object holding the quantitative
// analysis data behind a Repository: code size, dependency list, and the
// quality/language signals the complexity and learning-hours formulas read.
// It carries no identity; two metadata values with identical fields
// describe the same analysis state.
type RepositoryMetadata struct {
	LinesOfCode          int
	FileCount            int
	Dependencies         []string
	HasTests             bool
	HasCI                bool
	HasDocumentation     bool
	LanguageDistribution map[string]int
}

// NewRepositoryMetadata validates and constructs a RepositoryMetadata.
func NewRepositoryMetadata(linesOfCode, fileCount int, dependencies []string, hasTests, hasCI, hasDocumentation bool, languageDistribution map[string]int) (RepositoryMetadata, error) {
	if linesOfCode < 0 {
		return RepositoryMetadata{}, NewValidationError("lines_of_code", "must not be negative")
	}
	if fileCount < 0 {
		return RepositoryMetadata{}, NewValidationError("file_count", "must not be negative")
	}

	dist := make(map[string]int, len(languageDistribution))
	for lang, lines := range languageDistribution {
		dist[lang] = lines
	}

	return RepositoryMetadata{
		LinesOfCode:          linesOfCode,
		FileCount:            fileCount,
		Dependencies:         append([]string(nil), dependencies...),
		HasTests:             hasTests,
		HasCI:                hasCI,
		HasDocumentation:     hasDocumentation,
		LanguageDistribution: dist,
	}, nil
}

// AnalysisUpdate carries a partial re-scan of a repository's codebase. Nil
// pointer fields and a nil LanguageDistribution leave the corresponding
// RepositoryMetadata field unchanged.
type AnalysisUpdate struct {
	LinesOfCode          *int
	FileCount            *int
	Dependencies         []string
	HasTests             *bool
	HasCI                *bool
	HasDocumentation     *bool
	LanguageDistribution map[string]int
}

// UpdateFromAnalysis returns a new RepositoryMetadata merging u over m;
// fields u leaves unset retain m's current value. m itself is untouched.
func (m RepositoryMetadata) UpdateFromAnalysis(u AnalysisUpdate) RepositoryMetadata {
	out := m
	if u.LinesOfCode != nil {
		out.LinesOfCode = *u.LinesOfCode
	}
	if u.FileCount != nil {
		out.FileCount = *u.FileCount
	}
	if u.Dependencies != nil {
		out.Dependencies = append([]string(nil), u.Dependencies...)
	}
	if u.HasTests != nil {
		out.HasTests = *u.HasTests
	}
	if u.HasCI != nil {
		out.HasCI = *u.HasCI
	}
	if u.HasDocumentation != nil {
		out.HasDocumentation = *u.HasDocumentation
	}
	if u.LanguageDistribution != nil {
		dist := make(map[string]int, len(u.LanguageDistribution))
		for lang, lines := range u.LanguageDistribution {
			dist[lang] = lines
		}
		out.LanguageDistribution = dist
	}
	return out
}

// DependencyCount returns len(Dependencies).
func (m RepositoryMetadata) DependencyCount() int {
	return len(m.Dependencies)
}

// IsLargeCodebase reports whether the codebase exceeds 10,000 lines.
func (m RepositoryMetadata) IsLargeCodebase() bool {
	return m.LinesOfCode > 10_000
}

// IsMediumCodebase reports whether the codebase is between 1,000 and
// 10,000 lines, inclusive.
func (m RepositoryMetadata) IsMediumCodebase() bool {
	return m.LinesOfCode >= 1_000 && m.LinesOfCode <= 10_000
}
