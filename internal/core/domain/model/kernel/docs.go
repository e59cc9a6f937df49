// Package kernel holds the value objects shared by every roboshop aggregate:
// UUID identifiers and Money amounts in minor currency units.
package kernel
