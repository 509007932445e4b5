package schema

import "fmt"

// Vectorizer is a named embedding backend attached to a collection.
// VectorizerNone means BYOV: the caller supplies vectors directly.
type Vectorizer string

// Supported vectorizers.
const (
	VectorizerNone      Vectorizer = "BYOV"
	Text2VecOpenAI      Vectorizer = "text2vec_openai"
	Text2VecCohere      Vectorizer = "text2vec_cohere"
	Text2VecJinaAI      Vectorizer = "text2vec_jinaai"
	Text2VecHuggingFace Vectorizer = "text2vec_huggingface"
	Multi2VecCLIP       Vectorizer = "multi2vec_clip"
)

// moduleTokens maps vectorizers onto cluster module names.
var moduleTokens = map[Vectorizer]string{
	VectorizerNone:      "none",
	Text2VecOpenAI:      "text2vec-openai",
	Text2VecCohere:      "text2vec-cohere",
	Text2VecJinaAI:      "text2vec-jinaai",
	Text2VecHuggingFace: "text2vec-huggingface",
	Multi2VecCLIP:       "multi2vec-clip",
}

// requiredCredentials maps vectorizers onto the provider key each one needs.
// BYOV and multi2vec_clip (local inference container) need none.
var requiredCredentials = map[Vectorizer]string{
	Text2VecOpenAI:      "OpenAI API key",
	Text2VecCohere:      "Cohere API key",
	Text2VecJinaAI:      "JinaAI API key",
	Text2VecHuggingFace: "HuggingFace API key",
}

// SupportedVectorizers returns the fixed, ordered list of vectorizer choices.
func SupportedVectorizers() []Vectorizer {
	return []Vectorizer{
		VectorizerNone, Text2VecOpenAI, Text2VecCohere,
		Text2VecJinaAI, Text2VecHuggingFace, Multi2VecCLIP,
	}
}

// IsValid checks if the vectorizer is supported.
func (v Vectorizer) IsValid() bool {
	_, ok := moduleTokens[v]
	return ok
}

// ModuleToken returns the cluster module name for the vectorizer.
func (v Vectorizer) ModuleToken() string { return moduleTokens[v] }

// RequiredCredential returns the provider key name the vectorizer needs,
// or "" when none is required.
func (v Vectorizer) RequiredCredential() string { return requiredCredentials[v] }

// IsMultimodal reports whether the vectorizer embeds image+text content.
func (v Vectorizer) IsMultimodal() bool { return v == Multi2VecCLIP }

// VectorizerFromModule maps a cluster module name back to a vectorizer.
func VectorizerFromModule(token string) (Vectorizer, error) {
	for v, t := range moduleTokens {
		if t == token {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vectorizer module %q", token)
}

// MultimodalProperties returns the fixed property set pre-populated for
// multi2vec_clip collections: text fields plus the image blob the module embeds.
func MultimodalProperties() []PropertyDef {
	return []PropertyDef{
		Reconstruct("title", Text, "Title for the multimodal embedding", true, true),
		Reconstruct("description", Text, "Description for the multimodal embedding", true, true),
		Reconstruct("image", Blob, "Base64-encoded image content", false, false),
	}
}
