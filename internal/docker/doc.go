/*
Package docker starts a local ElasticMQ container with the docker cli.

Ports held by other processes can be freed first with [Runtime.FreePort], which finds
listeners with lsof and kills them.
*/
package docker
