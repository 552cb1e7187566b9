// Package mock provides a test double for ai.TextGenerator.
package mock
