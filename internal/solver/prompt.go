package solver

import (
    "fmt"
)

const promptTemplate = `You are a patient math tutor. Solve the following math problem step by step.
Show your working, keep each step short, and wrap math in $...$ for inline
expressions and $$...$$ for standalone equations.

Problem:
%s`

// BuildPrompt interpolates the user question into the fixed instruction
// template. The question is inserted verbatim; no escaping is performed.
func BuildPrompt(question string) string {
    return fmt.Sprintf(promptTemplate, question)
}

// ExamplePrompts are offered to the frontend for one-click prefill.
func ExamplePrompts() []string {
    return []string{
        "What is the derivative of sin(x^2)?",
        "Solve the equation 2x^2 + 3x - 5 = 0.",
        "What is the integral of 1 / (1 + x^2)?",
        "How do you find the area of a triangle given 3 sides?",
    }
}
