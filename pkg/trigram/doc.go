/*
Package trigram provides an in-memory trigram language model and a greedy
text generator that walks it.

A Model is trained by recording every consecutive (first, second, third) word
triple of a corpus. Once trained, a Generator emits a continuous stream of
three-word sequences, always choosing the most probable continuation, avoiding
exact repeats of earlier sequences and falling back to a random starting word
whenever the model has nothing to say about the current one.

Training and generation are separate phases: a Model must not be mutated while
a Generator is reading it.
*/
package trigram
