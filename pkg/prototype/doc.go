// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prototype defines the immutable description model of a PHP
// source unit: namespace, use statements, classes, interfaces, traits and
// their constants, properties, methods, and parameters.
//
// Values are built by package builder and never change afterwards, so they
// can be compared, diffed, and shared between calls freely. Every ordered
// container exposes Len, First, Last, Get by name, and a Sorted view that is
// meant for display only; identity never depends on sort order.
package prototype
