package source

import (
	"regexp"
	"strings"

	"github.com/umputun/aidigest/pkg/domain"
)

// ReadmeInfo is the structured summary of a repository README
type ReadmeInfo struct {
	Description  string
	Features     []string
	TechStack    []string
	UseCases     []string
	Installation string
}

var (
	mdImageRe     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	mdLinkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdBoldRe      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalicRe    = regexp.MustCompile(`\*([^*]+)\*`)
	mdBoldUnderRe = regexp.MustCompile(`__([^_]+)__`)
	mdItalUnderRe = regexp.MustCompile(`_([^_]+)_`)
	mdCodeRe      = regexp.MustCompile("`([^`]+)`")
	listPrefixRe  = regexp.MustCompile(`^[-*\d.]+\s*`)
	listItemRe    = regexp.MustCompile(`^([-*]|\d+\.)\s`)
)

// ParseReadme recognizes sections by header keywords and collects description, list items
// of known sections and the install command
func ParseReadme(text string) ReadmeInfo {
	text = domain.Truncate(text, readmeMaxChars, "")
	info := ReadmeInfo{}
	section := ""

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			section = readmeSection(strings.ToLower(strings.TrimLeft(line, "# ")))
			continue
		}

		if info.Description == "" && isDescriptionLine(line) {
			info.Description = CleanMarkdown(line)
			continue
		}

		if section == "installation" {
			for _, prefix := range readmeInstallPrefixes {
				if strings.HasPrefix(line, prefix) {
					info.Installation = domain.Truncate(line, 100, "")
				}
			}
		}

		if !listItemRe.MatchString(line) {
			continue
		}
		item := CleanMarkdown(listPrefixRe.ReplaceAllString(line, ""))
		if len([]rune(item)) <= 5 {
			continue
		}
		switch section {
		case "features":
			if len(info.Features) < readmeMaxFeatures {
				info.Features = append(info.Features, domain.Truncate(item, 100, ""))
			}
		case "tech_stack":
			if len(info.TechStack) < readmeMaxTech {
				info.TechStack = append(info.TechStack, domain.Truncate(item, 50, ""))
			}
		case "use_cases":
			if len(info.UseCases) < readmeMaxUseCases {
				info.UseCases = append(info.UseCases, domain.Truncate(item, 100, ""))
			}
		}
	}

	if len(info.TechStack) == 0 {
		lower := strings.ToLower(text)
		for _, kw := range readmeTechKeywords {
			if len(info.TechStack) >= readmeMaxTech {
				break
			}
			if strings.Contains(lower, kw) {
				info.TechStack = append(info.TechStack, strings.ToUpper(kw[:1])+kw[1:])
			}
		}
	}
	return info
}

func readmeSection(header string) string {
	for _, s := range readmeSections {
		for _, kw := range s.keywords {
			if strings.Contains(header, kw) {
				return s.section
			}
		}
	}
	return ""
}

func isDescriptionLine(line string) bool {
	if strings.ContainsAny(line[:1], "#![<|-*`") {
		return false
	}
	lower := strings.ToLower(line)
	return !strings.Contains(lower, "badge") && !strings.Contains(lower, "shield") && !strings.Contains(lower, "img.shields")
}

// CleanMarkdown removes images, links, emphasis and inline code markers and collapses whitespace
func CleanMarkdown(s string) string {
	s = mdImageRe.ReplaceAllString(s, "")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	s = mdBoldRe.ReplaceAllString(s, "$1")
	s = mdItalicRe.ReplaceAllString(s, "$1")
	s = mdBoldUnderRe.ReplaceAllString(s, "$1")
	s = mdItalUnderRe.ReplaceAllString(s, "$1")
	s = mdCodeRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}
