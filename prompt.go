// Copyright (c) 2024 the authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package ontogen

const (
	// DefaultPrompt describes the ontology expected from the attached documents.
	DefaultPrompt = `Analyze the attached files and generate a TTL file that follows the OWL/RDF standards.

Requirements:
1. Analyze the other documents based on the table of contents
2. Write the output in Turtle syntax following the OWL/RDF standards
3. Define appropriate namespaces, classes and properties
4. Reflect the structure of the actions required at each crisis alert level

Structure of the TTL file to generate:
- Base namespace definitions
- Crisis alert level classes (Attention, Caution, Alert, Serious)
- Situation, action list and action detail classes for each level
- Department duty and role classes
- Appropriate property and relationship definitions`

	// FileAnalysisSuffix is appended to the prompt when files are attached to the message.
	FileAnalysisSuffix = "\n\nAnalyze the attached files and generate a TTL file."

	// Instructions are given to every run in addition to the assistant's own instructions.
	Instructions = "Using the table of contents as the reference, analyze the other documents and generate " +
		"a TTL file that complies with the OWL/RDF standards. Write the TTL file in Turtle syntax and " +
		"define appropriate namespaces, classes and properties."
)
