package meta

// TagKind discriminates the tag variants a generator can emit.
type TagKind string

const (
	TagTitle  TagKind = "title"
	TagMeta   TagKind = "meta"
	TagLink   TagKind = "link"
	TagScript TagKind = "script"
)

// MetaKey names the attribute that carries a meta tag's identifier.
type MetaKey string

const (
	MetaName      MetaKey = "name"
	MetaProperty  MetaKey = "property"
	MetaHTTPEquiv MetaKey = "http-equiv"
	MetaCharset   MetaKey = "charset"
)

// Tag is one generated element before serialization. Instances are produced
// fresh on every generation call and never mutated.
type Tag struct {
	Kind TagKind

	// Title tags.
	Text string

	// Meta tags: Key selects the identifying attribute, Name its value.
	Key     MetaKey
	Name    string
	Content string

	// Link tags.
	Rel  string
	Href string

	// Script tags.
	Type string
	Body string
}

// Title constructs a <title> tag.
func Title(text string) Tag {
	return Tag{Kind: TagTitle, Text: text}
}

// Meta constructs a <meta name=...> tag.
func Meta(name, content string) Tag {
	return Tag{Kind: TagMeta, Key: MetaName, Name: name, Content: content}
}

// Property constructs a <meta property=...> tag (Open Graph style).
func Property(property, content string) Tag {
	return Tag{Kind: TagMeta, Key: MetaProperty, Name: property, Content: content}
}

// HTTPEquiv constructs a <meta http-equiv=...> tag.
func HTTPEquiv(name, content string) Tag {
	return Tag{Kind: TagMeta, Key: MetaHTTPEquiv, Name: name, Content: content}
}

// Link constructs a <link rel=... href=...> tag.
func Link(rel, href string) Tag {
	return Tag{Kind: TagLink, Rel: rel, Href: href}
}

// Script constructs a <script type=...> tag whose body is embedded verbatim.
func Script(scriptType, body string) Tag {
	return Tag{Kind: TagScript, Type: scriptType, Body: body}
}
