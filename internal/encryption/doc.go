// Package encryption provides streaming CBC encryption with PKCS#7 padding.
// Every encrypted stream starts with a random IV of the algorithm's block size, stored in the clear.
// There is no MAC: tampering is not detected.
package encryption
