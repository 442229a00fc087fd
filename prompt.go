package chatbot

import "fmt"

// DefaultCompany is the company named in the persona instructions.
const DefaultCompany = "株式会社コトブキソリューション"

// Fixed labels separating prompt segments.
const (
	ContextLabel  = "--- 以下は回答の根拠となる社内情報です ---"
	QuestionLabel = "--- 従業員からの質問 ---"
)

const personaTemplate = `あなたは、%sの総務担当のチャットボットです。
従業員からの問い合わせに、親切かつ簡潔・丁寧な言葉遣いで回答してください。
これから渡す「社内情報」のテキストだけを情報源としてください。
「社内情報」に記載されていない質問については、「申し訳ありませんが、その件については分かりかねます。」とだけ回答してください。
一般的な知識や、あなたの意見、推測を答えてはいけません。
情報の出所や、あなたがAIであることを明かす必要はありません。`

// Persona returns the persona instructions for the given company.
// An empty company falls back to DefaultCompany.
func Persona(company string) string {
	if company == "" {
		company = DefaultCompany
	}
	return fmt.Sprintf(personaTemplate, company)
}

// Prompt is the ordered set of text segments sent to the model for one question.
type Prompt struct {
	Persona       string
	ContextLabel  string
	Context       string
	QuestionLabel string
	Question      string
}

// Segments returns the prompt segments in send order:
// persona, context label, context, question label, quoted question.
func (p *Prompt) Segments() []string {
	return []string{
		p.Persona,
		p.ContextLabel,
		p.Context,
		p.QuestionLabel,
		QuoteQuestion(p.Question),
	}
}

// QuoteQuestion renders the question segment. The question is inserted
// verbatim without escaping.
func QuoteQuestion(question string) string {
	return `質問: "` + question + `"`
}

// Assembler builds prompts around a fixed persona.
type Assembler struct {
	Persona string
}

// NewAssembler returns an Assembler using the persona for company.
func NewAssembler(company string) *Assembler {
	return &Assembler{Persona: Persona(company)}
}

// Assemble builds a new Prompt from the cached context and a question.
func (a *Assembler) Assemble(context, question string) *Prompt {
	return &Prompt{
		Persona:       a.Persona,
		ContextLabel:  ContextLabel,
		Context:       context,
		QuestionLabel: QuestionLabel,
		Question:      question,
	}
}

// AssemblePrompt builds a Prompt using the default persona.
func AssemblePrompt(context, question string) *Prompt {
	return NewAssembler(DefaultCompany).Assemble(context, question)
}
