package graql

// Keyword is a reserved word of the grammar. Keywords are never valid
// identifiers; the lexer classifies an identifier-shaped lexeme as a
// Keyword token whenever it matches one of the constants below.
type Keyword string

// Command keywords (§6.2).
const (
	KeywordMatch    Keyword = "match"
	KeywordGet      Keyword = "get"
	KeywordInsert   Keyword = "insert"
	KeywordDelete   Keyword = "delete"
	KeywordDefine   Keyword = "define"
	KeywordUndefine Keyword = "undefine"
	KeywordCompute  Keyword = "compute"
)

// Schema keywords.
const (
	KeywordSub      Keyword = "sub"
	KeywordSubX     Keyword = "sub!"
	KeywordAbstract Keyword = "abstract"
	KeywordRelates  Keyword = "relates"
	KeywordPlays    Keyword = "plays"
	KeywordHas      Keyword = "has"
	KeywordKey      Keyword = "key"
	KeywordValue    Keyword = "value"
	KeywordRegex    Keyword = "regex"
	KeywordAs       Keyword = "as"
	KeywordWhen     Keyword = "when"
	KeywordThen     Keyword = "then"
	KeywordRule     Keyword = "rule"
	KeywordType     Keyword = "type"
	KeywordIsa      Keyword = "isa"
	KeywordIsaX     Keyword = "isa!"
	KeywordId       Keyword = "id"
)

// Modifiers.
const (
	KeywordSort   Keyword = "sort"
	KeywordOffset Keyword = "offset"
	KeywordLimit  Keyword = "limit"
	KeywordGroup  Keyword = "group"
)

// Pattern connectives.
const (
	KeywordOr  Keyword = "or"
	KeywordNot Keyword = "not"
)

// Compute words.
const (
	KeywordFrom  Keyword = "from"
	KeywordTo    Keyword = "to"
	KeywordOf    Keyword = "of"
	KeywordIn    Keyword = "in"
	KeywordUsing Keyword = "using"
	KeywordWhere Keyword = "where"
)

// Literal keywords.
const (
	KeywordTrue  Keyword = "true"
	KeywordFalse Keyword = "false"
)

// allKeywords is the closed set of reserved words; the lexer consults it to
// decide whether an identifier-shaped lexeme is reserved.
var allKeywords = map[Keyword]bool{
	KeywordMatch: true, KeywordGet: true, KeywordInsert: true, KeywordDelete: true,
	KeywordDefine: true, KeywordUndefine: true, KeywordCompute: true,
	KeywordSub: true, KeywordSubX: true, KeywordAbstract: true, KeywordRelates: true,
	KeywordPlays: true, KeywordHas: true, KeywordKey: true, KeywordValue: true,
	KeywordRegex: true, KeywordAs: true, KeywordWhen: true, KeywordThen: true,
	KeywordRule: true, KeywordType: true, KeywordIsa: true, KeywordIsaX: true, KeywordId: true,
	KeywordSort: true, KeywordOffset: true, KeywordLimit: true, KeywordGroup: true,
	KeywordOr: true, KeywordNot: true,
	KeywordFrom: true, KeywordTo: true, KeywordOf: true, KeywordIn: true,
	KeywordUsing: true, KeywordWhere: true,
	KeywordTrue: true, KeywordFalse: true,
}

// IsKeyword reports whether text is a reserved word.
func IsKeyword(text string) bool {
	return allKeywords[Keyword(text)]
}

// AggregateMethod enumerates the aggregate functions accepted after a `get`
// query (§3, Queries).
type AggregateMethod string

const (
	AggregateCount  AggregateMethod = "count"
	AggregateMax    AggregateMethod = "max"
	AggregateMin    AggregateMethod = "min"
	AggregateMean   AggregateMethod = "mean"
	AggregateMedian AggregateMethod = "median"
	AggregateSum    AggregateMethod = "sum"
	AggregateStd    AggregateMethod = "std"
)

var aggregateMethods = map[string]AggregateMethod{
	"count": AggregateCount, "max": AggregateMax, "min": AggregateMin,
	"mean": AggregateMean, "median": AggregateMedian, "sum": AggregateSum, "std": AggregateStd,
}

// ComputeMethod enumerates the method matrix of §4.7.
type ComputeMethod string

const (
	ComputeCount      ComputeMethod = "count"
	ComputeMax        ComputeMethod = "max"
	ComputeMin        ComputeMethod = "min"
	ComputeMean       ComputeMethod = "mean"
	ComputeMedian     ComputeMethod = "median"
	ComputeSum        ComputeMethod = "sum"
	ComputeStd        ComputeMethod = "std"
	ComputePath       ComputeMethod = "path"
	ComputeCentrality ComputeMethod = "centrality"
	ComputeCluster    ComputeMethod = "cluster"
)

// ComputeAlgorithm enumerates the algorithms accepted by `using` (§4.7).
type ComputeAlgorithm string

const (
	AlgorithmDegree              ComputeAlgorithm = "degree"
	AlgorithmKCore               ComputeAlgorithm = "k-core"
	AlgorithmConnectedComponent  ComputeAlgorithm = "connected-component"
)

// ComputeParam enumerates the parameter names accepted inside `where [...]`
// (§4.7).
type ComputeParam string

const (
	ParamMinK     ComputeParam = "min-k"
	ParamK        ComputeParam = "k"
	ParamSize     ComputeParam = "size"
	ParamContains ComputeParam = "contains"
)

// ValueTypeKind enumerates the attribute value types of §3.
type ValueTypeKind string

const (
	ValueTypeLong     ValueTypeKind = "long"
	ValueTypeDouble   ValueTypeKind = "double"
	ValueTypeString   ValueTypeKind = "string"
	ValueTypeBoolean  ValueTypeKind = "boolean"
	ValueTypeDateTime ValueTypeKind = "datetime"
)

var valueTypeKinds = map[string]ValueTypeKind{
	"long": ValueTypeLong, "double": ValueTypeDouble, "string": ValueTypeString,
	"boolean": ValueTypeBoolean, "datetime": ValueTypeDateTime,
}

// Comparator enumerates the value-predicate operators of §3.
type Comparator string

const (
	ComparatorEq       Comparator = "=="
	ComparatorNeq      Comparator = "!=="
	ComparatorLt       Comparator = "<"
	ComparatorLte      Comparator = "<="
	ComparatorGt       Comparator = ">"
	ComparatorGte      Comparator = ">="
	ComparatorContains Comparator = "contains"
	ComparatorLike     Comparator = "like"
)

// Order is the sort direction accepted by `sort $var (asc|desc)`.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Punctuation tokens recognised by the lexer (§6.2). Parens are not named in
// §6.2's punctuation list, but relation role-player lists have no other
// delimiter in the grammar surface (§3 Relation(rolePlayers), §4.5's
// printed form); they are lexed as punctuation alongside the listed set.
const (
	PunctSemicolon  = ";"
	PunctComma      = ","
	PunctColon      = ":"
	PunctBraceOpen  = "{"
	PunctBraceClose = "}"
	PunctBrackOpen  = "["
	PunctBrackClose = "]"
	PunctParenOpen  = "("
	PunctParenClose = ")"
)
