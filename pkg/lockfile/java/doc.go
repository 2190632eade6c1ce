// Package java parses Maven POMs and Gradle dependency lockfiles.
//
// Both report Maven coordinates: the package name is "groupId:artifactId".
package java
