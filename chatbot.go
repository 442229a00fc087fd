// Package chatbot provides an internal question-answering service for
// employees. It concatenates a directory of local text files into a single
// context, wraps it in a fixed persona prompt together with the employee's
// question, and relays the answer generated by an external language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, gemini/, http/).
package chatbot
