/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package lang

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var embedded embed.FS

// Catalog is an immutable set of messages per language. It implements
// apis.Translator and is safe for concurrent use.
type Catalog struct {
	fallback language.Tag
	// tags lists supported languages; tags[0] is the fallback so that the
	// matcher's default answer is the fallback language.
	tags     []language.Tag
	matcher  language.Matcher
	messages map[language.Tag]map[Key]string
}

// Default returns the embedded catalog with English as the fallback language.
func Default() *Catalog {
	c, err := DefaultWith(language.English)
	if err != nil {
		// The embedded files are part of the build; failing here is a
		// programming error.
		panic(err)
	}
	return c
}

// DefaultWith loads the embedded catalog followed by extra sources, using
// fallback as the default language.
func DefaultWith(fallback language.Tag, extra ...fs.FS) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "messages")
	if err != nil {
		return nil, err
	}
	return Load(fallback, append([]fs.FS{sub}, extra...)...)
}

// Load reads every *.yaml file at the root of each source. File names are
// BCP 47 tags. Later sources override earlier ones key by key.
//
// fallback need not name a file exactly: "en-US" selects "en" and "zh-CN"
// selects "zh-Hans". Load fails only when no loaded language matches it.
func Load(fallback language.Tag, sources ...fs.FS) (*Catalog, error) {
	messages := make(map[language.Tag]map[Key]string)
	for _, src := range sources {
		files, err := fs.Glob(src, "*.yaml")
		if err != nil {
			return nil, fmt.Errorf("lang: list messages: %w", err)
		}
		sort.Strings(files)
		for _, name := range files {
			tag, err := language.Parse(strings.TrimSuffix(path.Base(name), ".yaml"))
			if err != nil {
				return nil, fmt.Errorf("lang: %s: %w", name, err)
			}
			raw, err := fs.ReadFile(src, name)
			if err != nil {
				return nil, fmt.Errorf("lang: read %s: %w", name, err)
			}
			var doc map[string]any
			if err := yaml.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("lang: decode %s: %w", name, err)
			}
			if messages[tag] == nil {
				messages[tag] = make(map[Key]string)
			}
			if err := flatten("", doc, messages[tag]); err != nil {
				return nil, fmt.Errorf("lang: %s: %w", name, err)
			}
		}
	}

	fallback, err := closest(fallback, messages)
	if err != nil {
		return nil, err
	}

	tags := []language.Tag{fallback}
	var rest []language.Tag
	for tag := range messages {
		if tag != fallback {
			rest = append(rest, tag)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })
	tags = append(tags, rest...)

	return &Catalog{
		fallback: fallback,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		messages: messages,
	}, nil
}

// Translate returns the message for key in the language closest to tag,
// then in the fallback language, then the key itself.
func (c *Catalog) Translate(tag language.Tag, key string) string {
	k := Key(Normalize(key))
	if msg, ok := c.messages[c.resolve(tag)][k]; ok {
		return msg
	}
	if msg, ok := c.messages[c.fallback][k]; ok {
		return msg
	}
	return key
}

// Match negotiates an Accept-Language header value against the supported
// languages. Malformed or empty input yields the fallback language.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Fallback returns the default language.
func (c *Catalog) Fallback() language.Tag { return c.fallback }

// Tags returns the supported languages, fallback first.
func (c *Catalog) Tags() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

func (c *Catalog) resolve(tag language.Tag) language.Tag {
	if _, ok := c.messages[tag]; ok {
		return tag
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// closest returns the loaded language best matching want.
func closest(want language.Tag, messages map[language.Tag]map[Key]string) (language.Tag, error) {
	if _, ok := messages[want]; ok {
		return want, nil
	}
	tags := make([]language.Tag, 0, len(messages))
	for tag := range messages {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	if len(tags) > 0 {
		_, idx, conf := language.NewMatcher(tags).Match(want)
		if conf != language.No {
			return tags[idx], nil
		}
	}
	return language.Und, fmt.Errorf("lang: no messages for fallback language %q", want)
}

// flatten walks a decoded YAML mapping and stores leaf strings under their
// dotted path.
func flatten(prefix string, node map[string]any, into map[Key]string) error {
	for name, v := range node {
		p := name
		if prefix != "" {
			p = prefix + "." + name
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(p, val, into); err != nil {
				return err
			}
		case string:
			k, err := Parse(p)
			if err != nil {
				return fmt.Errorf("key %q: %w", p, err)
			}
			into[k] = val
		case nil:
			// "key:" with no value; nothing to translate.
		default:
			return fmt.Errorf("key %q: expected string or mapping, got %T", p, v)
		}
	}
	return nil
}
