/*
Package id3 grows decision trees from datasets of discretized records.

Trees are grown by recursively partitioning the dataset on the feature
whose split yields the highest information gain, with a branch for every
value of the feature observed in the records, until the records under a
branch are class-pure.

The entropy functions used to select features are exported so they can be
used on their own.
*/
package id3
