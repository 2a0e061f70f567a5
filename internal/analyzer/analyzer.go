package analyzer

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/mcncl/jsonv/internal/models"
	"github.com/mcncl/jsonv/internal/pointer"
	"github.com/mcncl/jsonv/internal/value"
)

// Regex patterns for special string formats
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Time format patterns (ordered by specificity - most specific first)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)            // 2006-01-02T15:04:05Z
	iso8601Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?([+-]\d{2}:\d{2}|Z|[+-]\d{4})?$`) // ISO8601 variants
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                               // 2006-01-02 15:04:05
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                                         // 2006-01-02
)

// elementSegment stands for every element of an array in a path. A key
// spelled the same is written as escapedElementKey, which no pointer
// escaped key can produce since "~" is always followed by 0 or 1 there.
const (
	elementSegment    = "*"
	escapedElementKey = "~*"
)

// Analyzer walks documents and records what kinds of values occur at each
// path. Several documents can be fed to one Analyzer to describe a
// collection.
type Analyzer struct {
	// paths tracks one entry per distinct path
	paths map[string]*pathEntry
}

type pathEntry struct {
	parent    string
	isElement bool

	kinds   []value.Kind
	count   int
	objects int

	numbers    int
	nonInteger bool

	strings     int
	format      models.StringFormat
	mixedFormat bool
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{paths: make(map[string]*pathEntry)}
}

// Analyze adds doc to the analysis and returns the shape of everything
// analyzed so far.
func (a *Analyzer) Analyze(doc models.Document) models.Shape {
	a.analyzeNode(doc.Root, "", "", false)
	return a.Shape()
}

// Shape returns the summary of the analyzed documents, ordered by path.
func (a *Analyzer) Shape() models.Shape {
	shape := models.Shape{Paths: make([]models.PathInfo, 0, len(a.paths))}
	for path, e := range a.paths {
		info := models.PathInfo{
			Path:    path,
			Kinds:   slices.Clone(e.kinds),
			Count:   e.count,
			Integer: e.numbers > 0 && !e.nonInteger,
		}
		if e.strings > 0 && !e.mixedFormat {
			info.Format = e.format
		}
		if parent, ok := a.paths[e.parent]; ok && path != "" && !e.isElement {
			info.Optional = e.count < parent.objects
		}
		shape.Paths = append(shape.Paths, info)
	}
	slices.SortFunc(shape.Paths, func(x, y models.PathInfo) int {
		return strings.Compare(x.Path, y.Path)
	})
	return shape
}

func (a *Analyzer) entry(path, parent string, isElement bool) *pathEntry {
	e, ok := a.paths[path]
	if !ok {
		e = &pathEntry{parent: parent, isElement: isElement}
		a.paths[path] = e
	}
	return e
}

func (a *Analyzer) analyzeNode(node value.Value, path, parent string, isElement bool) {
	e := a.entry(path, parent, isElement)
	e.count++

	kind := node.Kind()
	if i, found := slices.BinarySearch(e.kinds, kind); !found {
		e.kinds = slices.Insert(e.kinds, i, kind)
	}

	switch kind {
	case value.KindObject:
		e.objects++
		for _, field := range value.As[value.Object](&node).Fields() {
			a.analyzeNode(field.Value, path+"/"+keySegment(field.Key), path, false)
		}
	case value.KindArray:
		for _, item := range *value.As[value.Array](&node) {
			a.analyzeNode(item, path+"/"+elementSegment, path, true)
		}
	case value.KindNumber:
		e.numbers++
		if f := value.Get[float64](node); math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			e.nonInteger = true
		}
	case value.KindString:
		format := analyzeString(value.Get[string](node))
		if e.strings > 0 && format != e.format {
			e.mixedFormat = true
		}
		e.strings++
		e.format = format
	}
}

func keySegment(key string) string {
	if key == elementSegment {
		return escapedElementKey
	}
	return pointer.Escape(key)
}

func analyzeString(s string) models.StringFormat {
	if uuidRegex.MatchString(s) {
		return models.FormatUUID
	}
	if rfc3339Regex.MatchString(s) || iso8601Regex.MatchString(s) || dateTimeRegex.MatchString(s) {
		return models.FormatDateTime
	}
	if dateOnlyRegex.MatchString(s) {
		return models.FormatDate
	}
	return models.FormatNone
}
