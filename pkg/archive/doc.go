/*
Package archive keeps a history of generated stories in a SQLite database:
the text of each story, the length it was asked for, the seed it was
generated with and the corpus documents its model was trained on.

The trained model itself is never stored; only its output is.
*/
package archive
