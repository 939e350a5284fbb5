// Package prompt assembles the system prompts for the three retrieval
// stages. The templates are deliberately static text plus a few dynamic
// sections (entity explanations, projected schema, few-shot examples);
// everything the model is allowed to rely on is spelled out inline.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JustinLoye/network-agents/internal/examples"
	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/schema"
	"github.com/JustinLoye/network-agents/internal/vocab"
)

// EntityExtraction builds the system prompt constraining the extractor to
// the closed label vocabulary, with few-shot exchanges and a trailing
// reminder listing every allowed label.
func EntityExtraction(v *vocab.Vocabulary) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant that extract or guess Internet entities from user messages.\n\n")
	b.WriteString("Return ONLY a python list with a list of entities related to the Internet. Each entity has to be one of the following list:\n")
	b.WriteString(v.DescribeAll())
	b.WriteString("\n\n\nDO NOT invent new entities, pick only from the words listed above.\n")
	b.WriteString("Include entity even if you are not sure.\n\n\n")
	b.WriteString("Here are some example of entities extraction:\n\n")

	for _, shot := range entityShots {
		fmt.Fprintf(&b, "user: %s\n assistant: %s\n\n", shot.User, shot.Assistant)
	}

	b.WriteString("\nRemember to pick entities only from this list:\n")
	b.WriteString(strings.Join(v.AllLabels(), " "))

	return b.String()
}

// CypherSynthesis builds the query-generation system prompt: explanations
// for the extracted labels only, the schema projected down to those labels,
// and the selected few-shot question/query pairs.
func CypherSynthesis(v *vocab.Vocabulary, s *schema.Schema, entities []string, shots []examples.Selected) string {
	projected := s.Project(entities, schema.ModeAnd)

	var b strings.Builder
	b.WriteString("Task:Generate Cypher statement to query a graph database about the Internet.\n")
	b.WriteString("Instructions:\n")
	b.WriteString("You will use only the context provided here to formulate the query. Here is what you need to know:\n\n")
	b.WriteString("Node labels explanation:\n")
	b.WriteString(v.Describe(entities))
	b.WriteString("\n\nNeo4j schema:\n")
	b.WriteString(projected.Render())
	b.WriteString("\n\nNote: Do not include any explanations or apologies in your responses.\n")
	b.WriteString("Do not respond to any questions that might ask anything else than for you to construct a Cypher statement.\n")
	b.WriteString("Do not include any text except the generated Cypher statement.\n\n")
	b.WriteString("Examples: Here are a few examples of generated Cypher statements for some question examples:\n")

	for _, shot := range shots {
		fmt.Fprintf(&b, "\nQuestion: %s\nCypher query: %s\n", shot.Prompt, shot.Query)
	}

	return b.String()
}

// Presenter builds the answer-presentation system prompt, scoped to the
// labels involved in the current question.
func Presenter(v *vocab.Vocabulary, entities []string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant that present the results of a Cypher query to the user.\n")
	b.WriteString("The user will provide his query in natural language and the result, and your role is to present it in a clear and professional way.\n")
	b.WriteString("Cypher queries are made to a neo4j knowledge graph called Internet Yellow Pages (IYP).\n")
	b.WriteString("IYP is a knowledge database that gathers information about Internet resources (for example ASNs, IP prefixes, and domain names).\n\n\n")
	b.WriteString("You will use the context provided here to help presenting the result. Here is what you need to know about IYP:\n\n")
	b.WriteString("Node labels explanation:\n")
	b.WriteString(v.Describe(entities))
	b.WriteString("\n\n\nHere are some examples of user message and expected assistant answer:\n\n")

	for _, shot := range presenterShots {
		fmt.Fprintf(&b, "user: %s\n assistant: %s\n\n", shot.User, shot.Assistant)
	}

	return strings.TrimRight(b.String(), "\n")
}

// PresenterInput joins the user question, the executed query, and its
// serialized result into the presenter's human message.
func PresenterInput(userQuery, cypherQuery string, records []iyp.Record) string {
	return strings.Join([]string{userQuery, cypherQuery, FormatRecords(records)}, "\n")
}

// FormatRecords serializes result rows for inclusion in a prompt.
func FormatRecords(records []iyp.Record) string {
	if len(records) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(records)
	if err != nil {
		return fmt.Sprintf("%v", records)
	}
	return string(encoded)
}
