package ai

import (
	"fmt"
	"strings"
)

// SystemPrompt is the fixed system instruction sent with every recipe request.
const SystemPrompt = `You are an assistant that receives a list of ingredients that a user has and suggests a recipe they could make with some or all of those ingredients. Format the response in markdown.`

const userPromptTemplate = "I have %s. Please give me a recipe you'd recommend I make!"

// FormatIngredients joins ingredients into a human-readable phrase, in the order given.
func FormatIngredients(ingredients []string) string {
	return strings.Join(ingredients, ", ")
}

// BuildUserPrompt embeds the ingredient phrase into the user message template.
func BuildUserPrompt(ingredients []string) string {
	return fmt.Sprintf(userPromptTemplate, FormatIngredients(ingredients))
}
