// Package summarizer implements LLM templates for hero selection, deep hero summaries and translation.
// Every operation is total, an empty or broken LLM reply falls back to deterministic defaults.
package summarizer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/aidigest/pkg/domain"
)

//go:generate moq -out mocks/llm.go -pkg mocks -skip-ensure -fmt goimports . LLM

// LLM is a total chat client, failures come back as empty string or empty map
type LLM interface {
	Call(ctx context.Context, prompt string, temperature float64) string
	CallJSON(ctx context.Context, prompt string, temperature float64) map[string]any
}

// Extractor returns readable text of a page
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// DefaultTranslateLimit is the number of items translated per batch
const DefaultTranslateLimit = 10

const (
	heroCandidates  = 10
	heroSummaryCut  = 300
	articleTextCut  = 1500
	videoDescCut    = 2000
	summarizeSumCut = 200
)

// Params configures Summarizer
type Params struct {
	LLM         LLM
	Extractor   Extractor // optional, enriches hero prompts of articles and news with page text
	Temperature float64
}

// Summarizer applies LLM templates to items
type Summarizer struct {
	Params
}

// New makes Summarizer, zero temperature means 0.7
func New(params Params) *Summarizer {
	if params.Temperature == 0 {
		params.Temperature = 0.7
	}
	return &Summarizer{Params: params}
}

var numberRe = regexp.MustCompile(`\d+`)

// SelectHero asks the LLM to pick the most valuable of the first 10 items and returns its index.
// A single item is returned without asking, an unparsable reply or one outside the listed candidates gives 0,
// no items gives -1.
func (s *Summarizer) SelectHero(ctx context.Context, items []domain.Item, moduleName string) int {
	switch len(items) {
	case 0:
		return -1
	case 1:
		return 0
	}

	lines := make([]string, 0, heroCandidates)
	for i, it := range items {
		if i >= heroCandidates {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %s", i+1, it.Source, it.Title))
	}

	prompt := fmt.Sprintf(`你是一位严格的 AI 科技主编。从下方%s列表中选出 1 个最具价值的内容作为今日头条。

筛选标准（优先级从高到低）：
1. 涉及 OpenAI/Google/Anthropic/NVIDIA 等巨头的重大发布
2. 涉及 Sam Altman/Andrej Karpathy/Dario Amodei 等顶流人物
3. 涉及具体技术突破或重要研究成果
4. 时效性和影响力

内容列表：
%s

只返回被选中内容的序号（如 1），不要任何解释。`, moduleName, strings.Join(lines, "\n"))

	reply := s.LLM.Call(ctx, prompt, s.Temperature)
	m := numberRe.FindString(reply)
	if m == "" {
		return 0
	}
	idx, err := strconv.Atoi(m)
	if err != nil || idx < 1 || idx > min(len(items), heroCandidates) {
		lgr.Printf("[DEBUG] hero reply %q out of range for %s, using first item", reply, moduleName)
		return 0
	}
	return idx - 1
}

var heroTypeNames = map[domain.ContentType]string{
	domain.ContentVideo:   "视频",
	domain.ContentArticle: "文章",
	domain.ContentProduct: "产品",
	domain.ContentNews:    "新闻",
}

// ProcessHero generates the deep summary of a hero: chinese title, summary, core insight and key points.
// Fields are left unchanged when the LLM returns nothing.
func (s *Summarizer) ProcessHero(ctx context.Context, item *domain.Item, ct domain.ContentType) {
	typeName, ok := heroTypeNames[ct]
	if !ok {
		typeName = "内容"
	}

	summary := domain.Truncate(item.Summary, heroSummaryCut, "")
	if summary == "" {
		summary = "无"
	}
	prompt := fmt.Sprintf(`你是一名资深 AI 研究员。根据以下%s信息生成深度总结。

标题：%s
来源：%s
摘要：%s
%s
输出 JSON 格式：
{
  "title_zh": "中文标题（简洁有力）",
  "summary": "60-80字中文摘要",
  "core_insight": "一句话核心认知",
  "key_points": ["要点1", "要点2", "要点3"]
}

只输出 JSON，不要其他内容。`, typeName, item.Title, item.Source, summary, s.articleText(ctx, item, ct))

	data := s.LLM.CallJSON(ctx, prompt, s.Temperature)
	if len(data) == 0 {
		return
	}
	item.TitleZh = str(data, "title_zh", item.Title)
	item.Summary = str(data, "summary", item.Summary)
	item.CoreInsight = str(data, "core_insight", "")
	item.KeyPoints = strList(data, "key_points")
	if len(item.KeyPoints) > domain.MaxKeyPoints {
		item.KeyPoints = item.KeyPoints[:domain.MaxKeyPoints]
	}
}

// articleText returns the extracted page text block for article and news heroes, empty otherwise
func (s *Summarizer) articleText(ctx context.Context, item *domain.Item, ct domain.ContentType) string {
	if s.Extractor == nil || (ct != domain.ContentArticle && ct != domain.ContentNews) || item.Link == "" {
		return ""
	}
	text, err := s.Extractor.Extract(ctx, item.Link)
	if err != nil || text == "" {
		lgr.Printf("[DEBUG] no article text for %s, %v", item.Link, err)
		return ""
	}
	return "正文节选：" + domain.Truncate(text, articleTextCut, "") + "\n"
}

// TranslateTweet translates a microblog post and summarizes it in one sentence.
// Falls back to the original text as title and empty summary.
func (s *Summarizer) TranslateTweet(ctx context.Context, item *domain.Item) {
	prompt := fmt.Sprintf(`你是一位专业的AI科技编辑。请将以下推文翻译成中文，并用一句话总结其核心内容。

推文原文：%s
作者：%s

输出 JSON 格式：
{"title_zh": "中文翻译（保持原意，语言流畅）", "summary": "一句话总结这条推文在讲什么（15-30字）"}

只输出 JSON，不要其他内容。`, item.Title, item.Author)

	data := s.LLM.CallJSON(ctx, prompt, s.Temperature)
	if len(data) == 0 {
		item.TitleZh = item.Title
		item.Summary = ""
		return
	}
	item.TitleZh = str(data, "title_zh", item.Title)
	item.Summary = str(data, "summary", "")
}

// TranslateVideo extracts chinese title, summary, guests and topics of a video or podcast episode
// from its title and description. Falls back to the original title.
func (s *Summarizer) TranslateVideo(ctx context.Context, item *domain.Item) {
	desc := item.Extra.Description()
	if desc == "" {
		desc = item.Summary
	}
	prompt := fmt.Sprintf(`你是一位专业的AI科技编辑。请根据以下播客/视频的标题和描述，提取结构化信息。

标题：%s
频道：%s
描述：%s

输出 JSON 格式：
{
  "title_zh": "中文标题（简洁有力）",
  "summary": "一句话总结这期播客/视频的核心内容（20-40字）",
  "guests": [
    {"name": "嘉宾英文名", "name_zh": "嘉宾中文名", "title": "嘉宾身份/职位介绍"}
  ],
  "topics": ["讨论主题1", "讨论主题2", "讨论主题3"]
}

注意：
- guests 数组包含所有做客嘉宾，如果没有明确嘉宾信息则为空数组
- topics 数组包含3-5个本期讨论的核心主题
- 所有内容用中文输出

只输出 JSON，不要其他内容。`, item.Title, item.Source, domain.Truncate(desc, videoDescCut, ""))

	data := s.LLM.CallJSON(ctx, prompt, s.Temperature)
	if len(data) == 0 {
		item.TitleZh = item.Title
		return
	}
	item.TitleZh = str(data, "title_zh", item.Title)
	item.Summary = str(data, "summary", "")
	item.Extra.Guests = guests(data)
	item.Extra.Topics = strList(data, "topics")
}

// TranslateTitle translates the title, falls back to the original
func (s *Summarizer) TranslateTitle(ctx context.Context, item *domain.Item) {
	prompt := fmt.Sprintf(`将以下标题翻译成简洁的中文：

原标题：%s

只输出翻译后的中文标题，不要任何解释。`, item.Title)

	if reply := strings.TrimSpace(s.LLM.Call(ctx, prompt, s.Temperature)); reply != "" {
		item.TitleZh = reply
		return
	}
	item.TitleZh = item.Title
}

// TranslateAndSummarize translates the title and writes a short summary when the item has none
func (s *Summarizer) TranslateAndSummarize(ctx context.Context, item *domain.Item) {
	summary := domain.Truncate(item.Summary, summarizeSumCut, "")
	if summary == "" {
		summary = "无"
	}
	prompt := fmt.Sprintf(`将以下内容翻译成中文，并生成简短摘要。

原标题：%s
来源：%s
原摘要：%s

输出 JSON 格式：
{"title_zh": "中文标题", "summary": "一句话摘要（20-30字）"}

只输出 JSON，不要其他内容。`, item.Title, item.Source, summary)

	data := s.LLM.CallJSON(ctx, prompt, s.Temperature)
	if len(data) == 0 {
		item.TitleZh = item.Title
		return
	}
	item.TitleZh = str(data, "title_zh", item.Title)
	if item.Summary == "" {
		item.Summary = str(data, "summary", "")
	}
}

// BatchTranslate translates titles of up to limit items, already translated items are skipped
func (s *Summarizer) BatchTranslate(ctx context.Context, items []domain.Item, limit int) {
	s.batch(ctx, items, limit, func(ctx context.Context, it *domain.Item) {
		if it.TitleZh == "" {
			s.TranslateTitle(ctx, it)
		}
	})
}

// BatchSummarize translates and summarizes up to limit items, already translated items are skipped
func (s *Summarizer) BatchSummarize(ctx context.Context, items []domain.Item, limit int) {
	s.batch(ctx, items, limit, func(ctx context.Context, it *domain.Item) {
		if it.TitleZh == "" {
			s.TranslateAndSummarize(ctx, it)
		}
	})
}

// BatchTranslateTweets runs TranslateTweet on up to limit items
func (s *Summarizer) BatchTranslateTweets(ctx context.Context, items []domain.Item, limit int) {
	s.batch(ctx, items, limit, s.TranslateTweet)
}

// BatchTranslateVideos runs TranslateVideo on up to limit items
func (s *Summarizer) BatchTranslateVideos(ctx context.Context, items []domain.Item, limit int) {
	s.batch(ctx, items, limit, s.TranslateVideo)
}

// batch applies fn to the first limit items, stops early on canceled context
func (s *Summarizer) batch(ctx context.Context, items []domain.Item, limit int, fn func(context.Context, *domain.Item)) {
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	for i := 0; i < limit; i++ {
		if ctx.Err() != nil {
			return
		}
		fn(ctx, &items[i])
	}
}

// str returns a non-empty string value of key, def otherwise
func str(data map[string]any, key, def string) string {
	if v, ok := data[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// strList returns non-empty string elements of a json array
func strList(data map[string]any, key string) []string {
	res := []string{}
	arr, ok := data[key].([]any)
	if !ok {
		return res
	}
	for _, v := range arr {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			res = append(res, strings.TrimSpace(s))
		}
	}
	return res
}

func guests(data map[string]any) []domain.Guest {
	res := []domain.Guest{}
	arr, ok := data["guests"].([]any)
	if !ok {
		return res
	}
	for _, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		g := domain.Guest{Name: str(m, "name", ""), NameZh: str(m, "name_zh", ""), Title: str(m, "title", "")}
		if g.Name == "" && g.NameZh == "" {
			continue
		}
		res = append(res, g)
	}
	return res
}
