// SPDX-FileCopyrightText: Copyright 2025 Restfire Authors
// SPDX-License-Identifier: Apache-2.0

// Package builtin implements the registry of dynamic $-prefixed variables
// such as $uuid and $timestamp. Generators are pure and stateless: every
// call produces a fresh value. Consistency across repeated references
// within one resolution pass is the resolver's responsibility, not ours.
package builtin

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix marks a variable name as builtin rather than scope-resolved.
const Prefix = "$"

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry",
	"Iris", "Jack", "Karen", "Liam", "Mia", "Noah", "Olivia", "Peter",
}

var lastNames = []string{
	"Anderson", "Brown", "Clark", "Davis", "Evans", "Garcia", "Harris",
	"Johnson", "Lewis", "Martinez", "Nguyen", "Patel", "Smith", "Taylor",
	"Walker", "Young",
}

// generators maps each reserved name to its generator function.
var generators = map[string]func() string{
	"$uuid":               newUUID,
	"$randomUuid":         newUUID,
	"$timestamp":          func() string { return strconv.FormatInt(time.Now().Unix(), 10) },
	"$isoTimestamp":       func() string { return time.Now().UTC().Format(time.RFC3339) },
	"$randomInt":          func() string { return strconv.Itoa(rand.IntN(1001)) },
	"$randomString":       func() string { return randomString(16) },
	"$randomAlphanumeric": func() string { return randomString(8) },
	"$randomEmail":        randomEmail,
	"$randomFirstName":    func() string { return firstNames[rand.IntN(len(firstNames))] },
	"$randomLastName":     func() string { return lastNames[rand.IntN(len(lastNames))] },
	"$randomBoolean":      func() string { return strconv.FormatBool(rand.IntN(2) == 0) },
	"$date":               func() string { return time.Now().Format("2006-01-02") },
	"$dateISO":            func() string { return time.Now().UTC().Format(time.RFC3339) },
}

// IsBuiltin reports whether name uses the builtin prefix. It does not imply
// that the name is recognized; use Known for that.
func IsBuiltin(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// Known reports whether name matches a registered generator, without
// producing a value.
func Known(name string) bool {
	_, ok := generators[name]
	return ok
}

// Generate produces a fresh value for a recognized builtin name.
// It returns false for unrecognized names, including $-prefixed names that
// do not match any registered generator.
func Generate(name string) (string, bool) {
	gen, ok := generators[name]
	if !ok {
		return "", false
	}
	return gen(), true
}

// Names returns the sorted list of all registered builtin names,
// used for completion and UI enumeration.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newUUID() string {
	return uuid.NewString()
}

func randomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphanumeric[rand.IntN(len(alphanumeric))]
	}
	return string(b)
}

func randomEmail() string {
	return fmt.Sprintf("%s@example.com", strings.ToLower(randomString(8)))
}
